package engagement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/VitaminP8/articlery/internal/model"
)

const maxTextLen = 2000

// Engine применяет вложенные мутации к документу статьи в памяти.
// Порядок проверок фиксированный: валидация текста, существование по цепочке
// адреса, права - и только потом изменение документа. Если любая проверка
// не прошла, документ остается нетронутым.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Result - результат мутации: сообщение и затронутая сущность
type Result struct {
	Message string         `json:"message"`
	Article *model.Article `json:"article,omitempty"`
	Comment *model.Comment `json:"comment,omitempty"`
	Reply   *model.Reply   `json:"reply,omitempty"`
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty", model.ErrValidation)
	}
	if len(text) > maxTextLen {
		return fmt.Errorf("%w: text is too long", model.ErrValidation)
	}
	return nil
}

// newEntityID выдает id на основе времени создания в миллисекундах.
// Уникальность требуется только внутри родительской последовательности,
// при коллизии id увеличивается до свободного.
func newEntityID(taken map[string]bool) string {
	id := time.Now().UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	return strconv.FormatInt(id, 10)
}

func commentIDs(a *model.Article) map[string]bool {
	taken := make(map[string]bool, len(a.Comments))
	for _, c := range a.Comments {
		taken[c.ID] = true
	}
	return taken
}

func replyIDs(c *model.Comment) map[string]bool {
	taken := make(map[string]bool, len(c.Replies))
	for _, r := range c.Replies {
		taken[r.ID] = true
	}
	return taken
}

func findComment(a *model.Article, id string) (*model.Comment, int, error) {
	for i, c := range a.Comments {
		if c.ID == id {
			return c, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: comment %s", model.ErrNotFound, id)
}

func findReply(c *model.Comment, id string) (*model.Reply, int, error) {
	for i, r := range c.Replies {
		if r.ID == id {
			return r, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: reply %s", model.ErrNotFound, id)
}

// CreateComment добавляет комментарий в конец последовательности
func (e *Engine) CreateComment(a *model.Article, actor, text string) (*model.Comment, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	if err := canComment(actor, a); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        newEntityID(commentIDs(a)),
		Author:    actor,
		Text:      text,
		CreatedAt: time.Now().Format(time.RFC3339),
		Replies:   []*model.Reply{},
	}
	a.Comments = append(a.Comments, comment)
	return comment, nil
}

// CreateReply добавляет ответ в конец последовательности ответов комментария
func (e *Engine) CreateReply(a *model.Article, commentID, actor, text string) (*model.Reply, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	comment, _, err := findComment(a, commentID)
	if err != nil {
		return nil, err
	}
	if err := canReply(actor, comment); err != nil {
		return nil, err
	}

	reply := &model.Reply{
		ID:        newEntityID(replyIDs(comment)),
		Author:    actor,
		Text:      text,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	comment.Replies = append(comment.Replies, reply)
	return reply, nil
}

// Edit меняет текст комментария или ответа и обновляет updatedAt.
// Автор сущности неизменяем.
func (e *Engine) Edit(a *model.Article, target Target, actor, text string) (*Result, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	switch target.Kind {
	case TargetComment:
		comment, _, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, comment.Author); err != nil {
			return nil, err
		}
		comment.Text = text
		comment.UpdatedAt = time.Now().Format(time.RFC3339)
		return &Result{Message: "Comment updated!", Comment: comment}, nil

	case TargetReply:
		comment, _, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		reply, _, err := findReply(comment, target.ReplyID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, reply.Author); err != nil {
			return nil, err
		}
		reply.Text = text
		reply.UpdatedAt = time.Now().Format(time.RFC3339)
		return &Result{Message: "Reply updated!", Reply: reply}, nil

	default:
		return nil, fmt.Errorf("%w: article text is edited through the article endpoint", model.ErrValidation)
	}
}

// Delete удаляет комментарий (вместе со всеми его ответами) либо один ответ.
// Порядок оставшихся соседей сохраняется.
func (e *Engine) Delete(a *model.Article, target Target, actor string) (*Result, error) {
	switch target.Kind {
	case TargetComment:
		comment, i, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, comment.Author); err != nil {
			return nil, err
		}
		a.Comments = append(a.Comments[:i], a.Comments[i+1:]...)
		return &Result{Message: "Comment deleted!"}, nil

	case TargetReply:
		comment, _, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		reply, i, err := findReply(comment, target.ReplyID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, reply.Author); err != nil {
			return nil, err
		}
		comment.Replies = append(comment.Replies[:i], comment.Replies[i+1:]...)
		return &Result{Message: "Reply deleted!"}, nil

	default:
		return nil, fmt.Errorf("%w: article is deleted through the article endpoint", model.ErrValidation)
	}
}

// ToggleLike переключает состояние лайка адресованной сущности
func (e *Engine) ToggleLike(a *model.Article, target Target, actor string) (*Result, error) {
	switch target.Kind {
	case TargetArticle:
		if err := canLikeArticle(actor, a); err != nil {
			return nil, err
		}
		liked := toggleCounter(&a.Liked, &a.Likes)
		return &Result{Message: toggleMessage("Article", liked), Article: a}, nil

	case TargetComment:
		comment, _, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, comment.Author); err != nil {
			return nil, err
		}
		liked := toggleFlag(&comment.Liked)
		return &Result{Message: toggleMessage("Comment", liked), Comment: comment}, nil

	case TargetReply:
		comment, _, err := findComment(a, target.CommentID)
		if err != nil {
			return nil, err
		}
		reply, _, err := findReply(comment, target.ReplyID)
		if err != nil {
			return nil, err
		}
		if err := canModify(actor, reply.Author); err != nil {
			return nil, err
		}
		liked := toggleFlag(&reply.Liked)
		return &Result{Message: toggleMessage("Reply", liked), Reply: reply}, nil
	}

	return nil, fmt.Errorf("%w: unknown like target", model.ErrValidation)
}

// OwnComments возвращает подпоследовательность комментариев автора запроса.
// Пустой результат считается отказом в доступе, а не пустым успехом.
func (e *Engine) OwnComments(a *model.Article, actor string) ([]*model.Comment, error) {
	if err := canListOwn(actor, a); err != nil {
		return nil, err
	}

	var own []*model.Comment
	for _, c := range a.Comments {
		if c.Author == actor {
			own = append(own, c)
		}
	}
	if len(own) == 0 {
		return nil, fmt.Errorf("%w: no comments by %s on this article", model.ErrForbidden, actor)
	}
	return own, nil
}
