package api

import (
	"io"
	"net/http"

	"github.com/VitaminP8/articlery/internal/engagement"
	"github.com/VitaminP8/articlery/internal/subscription"
	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	service *engagement.Service
	manager subscription.Manager
}

func NewEngagementHandler(service *engagement.Service, manager subscription.Manager) *EngagementHandler {
	return &EngagementHandler{service: service, manager: manager}
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *EngagementHandler) OwnComments(c *gin.Context) {
	comments, err := h.service.OwnComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *EngagementHandler) CreateReply(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), c.Param("id"), c.Param("commentId"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *EngagementHandler) EditComment(c *gin.Context) {
	h.edit(c, engagement.CommentTarget(c.Param("commentId")))
}

func (h *EngagementHandler) EditReply(c *gin.Context) {
	h.edit(c, engagement.ReplyTarget(c.Param("commentId"), c.Param("replyId")))
}

func (h *EngagementHandler) edit(c *gin.Context, target engagement.Target) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	result, err := h.service.Edit(c.Request.Context(), c.Param("id"), target, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	h.delete(c, engagement.CommentTarget(c.Param("commentId")))
}

func (h *EngagementHandler) DeleteReply(c *gin.Context) {
	h.delete(c, engagement.ReplyTarget(c.Param("commentId"), c.Param("replyId")))
}

func (h *EngagementHandler) delete(c *gin.Context, target engagement.Target) {
	result, err := h.service.Delete(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EngagementHandler) LikeComment(c *gin.Context) {
	h.like(c, engagement.CommentTarget(c.Param("commentId")))
}

func (h *EngagementHandler) LikeReply(c *gin.Context) {
	h.like(c, engagement.ReplyTarget(c.Param("commentId"), c.Param("replyId")))
}

func (h *EngagementHandler) like(c *gin.Context, target engagement.Target) {
	result, err := h.service.ToggleLike(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StreamComments отдает новые комментарии статьи как SSE-поток.
// Подписка живет, пока клиент держит соединение.
func (h *EngagementHandler) StreamComments(c *gin.Context) {
	articleID := c.Param("id")

	// статья должна существовать до подписки
	if _, err := h.service.ListComments(articleID); err != nil {
		writeError(c, err)
		return
	}

	ch, cancel := h.manager.Subscribe(articleID)
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case comment, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("comment", comment)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
