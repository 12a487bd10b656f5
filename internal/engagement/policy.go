package engagement

import (
	"fmt"

	"github.com/VitaminP8/articlery/internal/model"
)

// Правила доступа к дереву комментариев. Чистые функции:
// (актор, сущность) -> nil либо ErrUnauthenticated/ErrForbidden.
// Проверка существования сущности всегда выполняется до этих проверок.

// canComment: комментировать статью может только ее автор
func canComment(actor string, a *model.Article) error {
	if actor == "" {
		return fmt.Errorf("%w: login required to comment", model.ErrUnauthenticated)
	}
	if actor != a.Author {
		return fmt.Errorf("%w: only the article author can comment on it", model.ErrForbidden)
	}
	return nil
}

// canReply: отвечать на комментарий может только автор этого комментария
func canReply(actor string, c *model.Comment) error {
	if actor == "" {
		return fmt.Errorf("%w: login required to reply", model.ErrUnauthenticated)
	}
	if actor != c.Author {
		return fmt.Errorf("%w: only the comment author can reply to it", model.ErrForbidden)
	}
	return nil
}

// canModify: редактировать, удалять и лайкать комментарий/ответ может только
// его собственный автор. Авторство статьи прав на чужой комментарий не дает -
// владение проверяется на листовой сущности, а не наследуется от родителя.
func canModify(actor, owner string) error {
	if actor == "" {
		return fmt.Errorf("%w: login required", model.ErrUnauthenticated)
	}
	if actor != owner {
		return fmt.Errorf("%w: only the author can modify this entry", model.ErrForbidden)
	}
	return nil
}

// canLikeArticle: лайк статьи доступен только ее автору (симметрично canModify)
func canLikeArticle(actor string, a *model.Article) error {
	if actor == "" {
		return fmt.Errorf("%w: login required to like", model.ErrUnauthenticated)
	}
	if actor != a.Author {
		return fmt.Errorf("%w: only the article author can like it", model.ErrForbidden)
	}
	return nil
}

// canListOwn: просмотр "моих комментариев" доступен только автору статьи
func canListOwn(actor string, a *model.Article) error {
	if actor == "" {
		return fmt.Errorf("%w: login required", model.ErrUnauthenticated)
	}
	if actor != a.Author {
		return fmt.Errorf("%w: only the article author can list their comments", model.ErrForbidden)
	}
	return nil
}
