package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/model"
	"github.com/VitaminP8/articlery/models"
	"github.com/jinzhu/gorm"
)

type ArticlePostgresStorage struct{}

func NewArticlePostgresStorage() *ArticlePostgresStorage {
	return &ArticlePostgresStorage{}
}

// toRecord сериализует документ в строку таблицы.
// Дерево комментариев и теги пишутся JSON-ом, чтобы мутация любого уровня
// вложенности была одним UPDATE всей статьи.
func toRecord(a *model.Article) (*models.Article, error) {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return nil, fmt.Errorf("could not marshal tags: %w", err)
	}

	comments := a.Comments
	if comments == nil {
		comments = []*model.Comment{}
	}
	tree, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("could not marshal comments: %w", err)
	}

	return &models.Article{
		Title:    a.Title,
		Content:  a.Content,
		Author:   a.Author,
		Category: a.Category,
		Status:   a.Status,
		Tags:     string(tags),
		Image:    a.Image,
		Likes:    a.Likes,
		Liked:    a.Liked,
		Comments: string(tree),
	}, nil
}

func fromRecord(rec *models.Article) (*model.Article, error) {
	var tags []string
	if rec.Tags != "" {
		if err := json.Unmarshal([]byte(rec.Tags), &tags); err != nil {
			return nil, fmt.Errorf("could not unmarshal tags: %w", err)
		}
	}

	comments := []*model.Comment{}
	if rec.Comments != "" {
		if err := json.Unmarshal([]byte(rec.Comments), &comments); err != nil {
			return nil, fmt.Errorf("could not unmarshal comments: %w", err)
		}
	}

	return &model.Article{
		ID:        fmt.Sprint(rec.ID),
		Title:     rec.Title,
		Content:   rec.Content,
		Author:    rec.Author,
		Category:  rec.Category,
		Status:    rec.Status,
		Tags:      tags,
		Image:     rec.Image,
		Likes:     rec.Likes,
		Liked:     rec.Liked,
		Comments:  comments,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func findRecord(id string) (*models.Article, error) {
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid article ID %s", model.ErrNotFound, id)
	}

	var rec models.Article
	err = DB.First(&rec, uint(idInt)).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get article: %w", err)
	}
	return &rec, nil
}

func (s *ArticlePostgresStorage) CreateArticle(ctx context.Context, input model.ArticleInput) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	if err := article.ValidateInput(input); err != nil {
		return nil, err
	}

	doc := &model.Article{
		Title:    input.Title,
		Content:  input.Content,
		Author:   p.Username,
		Category: input.Category,
		Status:   input.Status,
		Tags:     input.Tags,
		Image:    article.ImageURL(input.Title, input.Category),
		Comments: []*model.Comment{},
	}

	rec, err := toRecord(doc)
	if err != nil {
		return nil, err
	}

	if err := DB.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("could not create article: %w", err)
	}

	return fromRecord(rec)
}

func (s *ArticlePostgresStorage) GetArticleById(id string) (*model.Article, error) {
	rec, err := findRecord(id)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

func (s *ArticlePostgresStorage) ListArticles(limit, offset int) (*model.ArticleConnection, error) {
	var total int
	if err := DB.Model(&models.Article{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("could not count articles: %w", err)
	}

	var recs []models.Article
	err := DB.Order("id asc").Limit(limit).Offset(offset).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("could not list articles: %w", err)
	}

	items := make([]*model.Article, 0, len(recs))
	for i := range recs {
		a, err := fromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}

	return &model.ArticleConnection{
		Items:      items,
		HasMore:    offset+len(recs) < total,
		NextOffset: offset + limit,
	}, nil
}

func (s *ArticlePostgresStorage) FilterArticles(filter model.ArticleFilter) ([]*model.Article, error) {
	if err := article.ValidateFilter(filter); err != nil {
		return nil, err
	}

	// category и status уходят в WHERE, поиск по тегам и подстроке
	// делается по документу уже после чтения
	query := DB.Order("id asc")
	if filter.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("LOWER(status) = LOWER(?)", filter.Status)
	}

	var recs []models.Article
	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("could not filter articles: %w", err)
	}

	var results []*model.Article
	for i := range recs {
		a, err := fromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		if article.MatchesFilter(a, filter) {
			results = append(results, a)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no matching articles found", model.ErrNotFound)
	}
	return results, nil
}

func (s *ArticlePostgresStorage) UpdateArticle(ctx context.Context, id string, input model.ArticleUpdate) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	if err := article.ValidateUpdate(input); err != nil {
		return nil, err
	}

	rec, err := findRecord(id)
	if err != nil {
		return nil, err
	}

	if rec.Author != p.Username {
		return nil, fmt.Errorf("%w: you can only update your own articles", model.ErrForbidden)
	}

	if input.Title != nil {
		rec.Title = *input.Title
	}
	if input.Content != nil {
		rec.Content = *input.Content
	}
	if input.Category != nil {
		rec.Category = *input.Category
	}
	if input.Status != nil {
		rec.Status = *input.Status
	}
	if input.Tags != nil {
		tags, err := json.Marshal(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("could not marshal tags: %w", err)
		}
		rec.Tags = string(tags)
	}

	if err := DB.Save(rec).Error; err != nil {
		return nil, fmt.Errorf("could not update article: %w", err)
	}

	return fromRecord(rec)
}

func (s *ArticlePostgresStorage) DeleteArticleById(ctx context.Context, id string) error {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	rec, err := findRecord(id)
	if err != nil {
		return err
	}

	if rec.Author != p.Username {
		return fmt.Errorf("%w: you can only delete your own articles", model.ErrForbidden)
	}

	if err := DB.Delete(rec).Error; err != nil {
		return fmt.Errorf("could not delete article: %w", err)
	}
	return nil
}

// SaveArticle перезаписывает документ целиком (автор и created_at не трогаются)
func (s *ArticlePostgresStorage) SaveArticle(a *model.Article) error {
	rec, err := findRecord(a.ID)
	if err != nil {
		return err
	}

	updated, err := toRecord(a)
	if err != nil {
		return err
	}

	rec.Title = updated.Title
	rec.Content = updated.Content
	rec.Category = updated.Category
	rec.Status = updated.Status
	rec.Tags = updated.Tags
	rec.Image = updated.Image
	rec.Likes = updated.Likes
	rec.Liked = updated.Liked
	rec.Comments = updated.Comments

	if err := DB.Save(rec).Error; err != nil {
		return fmt.Errorf("could not save article: %w", err)
	}
	return nil
}
