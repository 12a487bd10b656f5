package article

import (
	"context"

	"github.com/VitaminP8/articlery/internal/model"
)

// ArticleStorage - документное хранилище статей.
// GetArticleById отдает копию документа, SaveArticle заменяет его целиком.
type ArticleStorage interface {
	CreateArticle(ctx context.Context, input model.ArticleInput) (*model.Article, error)
	GetArticleById(id string) (*model.Article, error)
	ListArticles(limit, offset int) (*model.ArticleConnection, error)
	FilterArticles(filter model.ArticleFilter) ([]*model.Article, error)
	UpdateArticle(ctx context.Context, id string, input model.ArticleUpdate) (*model.Article, error)
	DeleteArticleById(ctx context.Context, id string) error
	SaveArticle(a *model.Article) error
}
