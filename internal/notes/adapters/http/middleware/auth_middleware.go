// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/services"
	"technotes/pkg/logger"
)

// UserContextKey - ключ Locals, под которым хранится обогащенный контекст запроса.
const UserContextKey = "userContext"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader  = "no authorization header provided"
	ErrorEmptyToken    = "empty bearer token"
	ErrorTokenRejected = "token verification failed"

	MsgUnauthorized  = "Unauthorized"
	MsgTokenRequired = "A token is required for authentication"
	MsgForbidden     = "Forbidden"
)

const bearerPrefix = "Bearer "

// claimsKeyType - тип ключа контекста для личности вызывающего.
type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// NewClaimsContext создает контекст с личностью вызывающего.
func NewClaimsContext(ctx context.Context, claims *entities.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext извлекает личность вызывающего из контекста.
func ClaimsFromContext(ctx context.Context) (*entities.AuthClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*entities.AuthClaims)
	return claims, ok
}

// NewAuthMiddleware создает промежуточное ПО, проверяющее bearer токен и
// помещающее личность вызывающего в контекст запроса. Отсутствие учетных
// данных - 401; предъявленные, но отклоненные - единообразный 403.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), "")
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": MsgUnauthorized,
			})
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		if token == "" {
			log.Debug(requestCtx, ErrorEmptyToken)
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": MsgTokenRequired,
			})
		}

		claims, err := tokenService.VerifyAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": MsgForbidden,
			})
		}

		ctx.Locals(UserContextKey, NewClaimsContext(requestCtx, claims))

		return ctx.Next()
	}
}
