package engagement

import (
	"context"
	"sync"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/model"
	"github.com/VitaminP8/articlery/internal/subscription"
)

// Service выполняет цикл "прочитать документ - преобразовать - сохранить".
// Записи в одну и ту же статью сериализуются мьютексом на id статьи:
// документ пишется целиком, поэтому без этого две конкурентные мутации
// соседних комментариев затирали бы друг друга.
type Service struct {
	articles article.ArticleStorage
	engine   *Engine
	manager  subscription.Manager

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(articles article.ArticleStorage, manager subscription.Manager) *Service {
	return &Service{
		articles: articles,
		engine:   NewEngine(),
		manager:  manager,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockArticle возвращает мьютекс конкретной статьи (создает при первом обращении)
func (s *Service) lockArticle(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Service) CreateComment(ctx context.Context, articleID, text string) (*model.Comment, error) {
	actor := auth.UsernameFromContext(ctx)

	lock := s.lockArticle(articleID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	comment, err := s.engine.CreateComment(a, actor, text)
	if err != nil {
		return nil, err
	}

	if err := s.articles.SaveArticle(a); err != nil {
		return nil, err
	}

	if s.manager != nil {
		s.manager.Publish(articleID, comment)
	}

	return comment, nil
}

func (s *Service) CreateReply(ctx context.Context, articleID, commentID, text string) (*model.Reply, error) {
	actor := auth.UsernameFromContext(ctx)

	lock := s.lockArticle(articleID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	reply, err := s.engine.CreateReply(a, commentID, actor, text)
	if err != nil {
		return nil, err
	}

	if err := s.articles.SaveArticle(a); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *Service) Edit(ctx context.Context, articleID string, target Target, text string) (*Result, error) {
	actor := auth.UsernameFromContext(ctx)

	lock := s.lockArticle(articleID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Edit(a, target, actor, text)
	if err != nil {
		return nil, err
	}

	if err := s.articles.SaveArticle(a); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) Delete(ctx context.Context, articleID string, target Target) (*Result, error) {
	actor := auth.UsernameFromContext(ctx)

	lock := s.lockArticle(articleID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Delete(a, target, actor)
	if err != nil {
		return nil, err
	}

	if err := s.articles.SaveArticle(a); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ToggleLike(ctx context.Context, articleID string, target Target) (*Result, error) {
	actor := auth.UsernameFromContext(ctx)

	lock := s.lockArticle(articleID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.ToggleLike(a, target, actor)
	if err != nil {
		return nil, err
	}

	if err := s.articles.SaveArticle(a); err != nil {
		return nil, err
	}

	return result, nil
}

// ListComments - публичное чтение всех комментариев статьи
func (s *Service) ListComments(articleID string) ([]*model.Comment, error) {
	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}
	if a.Comments == nil {
		return []*model.Comment{}, nil
	}
	return a.Comments, nil
}

// OwnComments - чтение "моих комментариев", доступно только автору статьи
func (s *Service) OwnComments(ctx context.Context, articleID string) ([]*model.Comment, error) {
	actor := auth.UsernameFromContext(ctx)

	a, err := s.articles.GetArticleById(articleID)
	if err != nil {
		return nil, err
	}

	return s.engine.OwnComments(a, actor)
}
