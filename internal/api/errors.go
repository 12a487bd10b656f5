package api

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/articlery/internal/model"
	"github.com/gin-gonic/gin"
)

// errorStatus переводит классификацию ошибки в HTTP-статус
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		// внутренности наружу не отдаем
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
