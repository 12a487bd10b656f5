package api

import (
	"net/http"
	"strconv"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/engagement"
	"github.com/VitaminP8/articlery/internal/model"
	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articles article.ArticleStorage
	service  *engagement.Service
}

func NewArticleHandler(articles article.ArticleStorage, service *engagement.Service) *ArticleHandler {
	return &ArticleHandler{articles: articles, service: service}
}

// List отдает либо страницу всех статей, либо результат фильтрации -
// в зависимости от того, какие query-параметры пришли
func (h *ArticleHandler) List(c *gin.Context) {
	filter := model.ArticleFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Tag:      c.Query("tags"),
		Search:   c.Query("search"),
	}

	if filter.IsEmpty() {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 {
			limit = 10
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		page, err := h.articles.ListArticles(limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	results, err := h.articles.FilterArticles(filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	a, err := h.articles.GetArticleById(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var input model.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	a, err := h.articles.CreateArticle(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Article created successfully",
		"article": a,
	})
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var input model.ArticleUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	a, err := h.articles.UpdateArticle(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	err := h.articles.DeleteArticleById(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

// Like переключает лайк статьи (отдельного глагола unlike нет)
func (h *ArticleHandler) Like(c *gin.Context) {
	result, err := h.service.ToggleLike(c.Request.Context(), c.Param("id"), engagement.ArticleTarget())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
