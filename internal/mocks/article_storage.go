package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/model"
)

// MockArticleStorage реализует article.ArticleStorage для тестирования
type MockArticleStorage struct {
	mu       sync.Mutex
	articles map[string]*model.Article
	nextID   int
}

func NewMockArticleStorage() *MockArticleStorage {
	return &MockArticleStorage{
		articles: make(map[string]*model.Article),
		nextID:   1,
	}
}

func (m *MockArticleStorage) CreateArticle(ctx context.Context, input model.ArticleInput) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextID)
	m.nextID++

	now := time.Now().Format(time.RFC3339)
	a := &model.Article{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		Author:    p.Username,
		Category:  input.Category,
		Status:    input.Status,
		Tags:      append([]string(nil), input.Tags...),
		Comments:  []*model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.articles[id] = a
	return a.Clone(), nil
}

func (m *MockArticleStorage) GetArticleById(id string) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[id]
	if !ok {
		return nil, fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}
	return a.Clone(), nil
}

func (m *MockArticleStorage) ListArticles(limit, offset int) (*model.ArticleConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]*model.Article, 0, len(m.articles))
	for _, a := range m.articles {
		items = append(items, a.Clone())
	}
	return &model.ArticleConnection{Items: items, HasMore: false, NextOffset: offset + limit}, nil
}

func (m *MockArticleStorage) FilterArticles(filter model.ArticleFilter) ([]*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var results []*model.Article
	for _, a := range m.articles {
		if article.MatchesFilter(a, filter) {
			results = append(results, a.Clone())
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no matching articles found", model.ErrNotFound)
	}
	return results, nil
}

func (m *MockArticleStorage) UpdateArticle(ctx context.Context, id string, input model.ArticleUpdate) (*model.Article, error) {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[id]
	if !ok {
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

func (m *MockArticleStorage) DeleteArticleById(ctx context.Context, id string) error {
	p, err := auth.GetPrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[id]
	if !ok {
		return fmt.Errorf("%w: article %s", model.ErrNotFound, id)
	}
	if a.Author != p.Username {
		return fmt.Errorf("%w: you can only delete your own articles", model.ErrForbidden)
	}
	delete(m.articles, id)
	return nil
}

func (m *MockArticleStorage) SaveArticle(a *model.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[a.ID]; !ok {
		return fmt.Errorf("%w: article %s", model.ErrNotFound, a.ID)
	}
	m.articles[a.ID] = a.Clone()
	return nil
}

// Seed вспомогательный метод для тестирования - кладет готовый документ в хранилище
func (m *MockArticleStorage) Seed(a *model.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[a.ID] = a.Clone()
}
