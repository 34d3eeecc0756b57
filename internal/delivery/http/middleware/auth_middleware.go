package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "github.com/PaintToxic22/sistema-rastreo/internal/delivery/context"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and puts the resulting actor on the
// context for handlers to pick up.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrAuthentication.ErrorCode(), "Token no proporcionado")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, domainerrors.ErrAuthentication.ErrorCode(), "El token debe ser de tipo Bearer")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrAuthentication.ErrorCode(), domainerrors.ErrAuthentication.Message())
		}

		actor := usecase.Actor{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}
		c.Set(string(deliverycontext.KeyActor), actor)

		return next(c)
	}
}

// RequireRoles is a middleware factory that rejects callers whose role is not
// in the allowed set. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRoles(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return response.Forbidden(c, domainerrors.ErrPermissionDenied.ErrorCode(), domainerrors.ErrPermissionDenied.Message())
			}

			if !entity.Roles(allowed).Contains(actor.Role) {
				return response.Forbidden(c, domainerrors.ErrPermissionDenied.ErrorCode(), domainerrors.ErrPermissionDenied.Message())
			}

			return next(c)
		}
	}
}

// ActorFromContext extracts the authenticated actor the Authenticate
// middleware stored.
func ActorFromContext(c echo.Context) (usecase.Actor, bool) {
	actor, ok := c.Get(string(deliverycontext.KeyActor)).(usecase.Actor)

	return actor, ok
}
