// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const principalKey = contextKey("principal")

// Principal - аутентифицированный пользователь запроса
type Principal struct {
	ID       uint
	Username string
}

// Сохраняет принципала в контексте
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Достает принципала из контекста
func GetPrincipalFromContext(ctx context.Context) (Principal, error) {
	val := ctx.Value(principalKey)
	p, ok := val.(Principal)
	if !ok {
		return Principal{}, errors.New("principal not found in context")
	}
	return p, nil
}

// UsernameFromContext возвращает имя пользователя или пустую строку,
// если запрос анонимный. Решение "можно ли анонимно" принимает движок.
func UsernameFromContext(ctx context.Context) string {
	p, err := GetPrincipalFromContext(ctx)
	if err != nil {
		return ""
	}
	return p.Username
}

// Middleware извлекает JWT из заголовка, валидирует его и кладет принципала в context.
// Запросы без токена (или с невалидным токеном) пропускаются как анонимные.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.Next() // неавторизованный доступ — пропускаем
			return
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			c.AbortWithStatusJSON(500, gin.H{"error": "JWT secret not set"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.Next() // если невалидный токен — пропускаем
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		idFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.Next()
			return
		}
		username, ok := claims["username"].(string)
		if !ok {
			c.Next()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), Principal{ID: uint(idFloat), Username: username})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
