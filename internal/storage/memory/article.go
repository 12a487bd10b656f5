package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/model"
)

type ArticleMemoryStorage struct {
	mu       sync.Mutex
	articles map[string]*model.Article
	nextID   int // Для хранения актуального ID (можно было использовать UUID)
}

func NewArticleMemoryStorage() *ArticleMemoryStorage {
	return &ArticleMemoryStorage{
		articles: make(map[string]*model.Article),
		nextID:   1,
	}
}

func (s *ArticleMemoryStorage) CreateArticle(ctx context.Context, input model.ArticleInput) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	if err := article.ValidateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	now := time.Now().Format(time.RFC3339)
	a := &model.Article{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		Author:    p.Username,
		Category:  input.Category,
		Status:    input.Status,
		Tags:      append([]string(nil), input.Tags...),
		Image:     article.ImageURL(input.Title, input.Category),
		Likes:     0,
		Comments:  []*model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.articles[id] = a
	return a.Clone(), nil
}

func (s *ArticleMemoryStorage) GetArticleById(id string) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.articles[id]
	if !exists {
		return nil, fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}

	// отдаем копию: читатель не должен менять сохраненный документ мимо SaveArticle
	return a.Clone(), nil
}

func (s *ArticleMemoryStorage) ListArticles(limit, offset int) (*model.ArticleConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedArticles()

	if offset >= len(all) {
		return &model.ArticleConnection{
			Items:      []*model.Article{},
			HasMore:    false,
			NextOffset: offset,
		}, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	items := make([]*model.Article, 0, end-offset)
	for _, a := range all[offset:end] {
		items = append(items, a.Clone())
	}

	return &model.ArticleConnection{
		Items:      items,
		HasMore:    end < len(all),
		NextOffset: offset + limit,
	}, nil
}

func (s *ArticleMemoryStorage) FilterArticles(filter model.ArticleFilter) ([]*model.Article, error) {
	if err := article.ValidateFilter(filter); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*model.Article
	for _, a := range s.sortedArticles() {
		if article.MatchesFilter(a, filter) {
			results = append(results, a.Clone())
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no matching articles found", model.ErrNotFound)
	}
	return results, nil
}

func (s *ArticleMemoryStorage) UpdateArticle(ctx context.Context, id string, input model.ArticleUpdate) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	if err := article.ValidateUpdate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.articles[id]
	if !exists {
		return nil, fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}

	if a.Author != p.Username {
		return nil, fmt.Errorf("%w: you can only update your own articles", model.ErrForbidden)
	}

	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Content != nil {
		a.Content = *input.Content
	}
	if input.Category != nil {
		a.Category = *input.Category
	}
	if input.Status != nil {
		a.Status = *input.Status
	}
	if input.Tags != nil {
		a.Tags = append([]string(nil), input.Tags...)
	}
	a.UpdatedAt = time.Now().Format(time.RFC3339)

	return a.Clone(), nil
}

func (s *ArticleMemoryStorage) DeleteArticleById(ctx context.Context, id string) error {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.articles[id]
	if !exists {
		return fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}

	if a.Author != p.Username {
		return fmt.Errorf("%w: you can only delete your own articles", model.ErrForbidden)
	}

	delete(s.articles, id)
	return nil
}

// SaveArticle заменяет сохраненный документ целиком
func (s *ArticleMemoryStorage) SaveArticle(a *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articles[a.ID]; !exists {
		return fmt.Errorf("%w: article %s", model.ErrNotFound, a.ID)
	}

	s.articles[a.ID] = a.Clone()
	return nil
}

// sortedArticles возвращает статьи в порядке возрастания числового id
func (s *ArticleMemoryStorage) sortedArticles() []*model.Article {
	all := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		left, _ := strconv.Atoi(all[i].ID)
		right, _ := strconv.Atoi(all[j].ID)
		return left < right
	})
	return all
}
