package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyRequester resolves the bearer token if present and stores the
// requester id and role in the request context. A missing or bad token is
// not an error here; route-level role checks decide whether one is needed.
func (s *AuthMiddleware) IdentifyRequester(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyRequester")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			{
				authType, token := split[0], split[1]
				if authType != "Bearer" {
					span.RecordError(fmt.Errorf("only Bearer is acceptable"))
					goto skipCheckAuthorization
				}

				claims, err := s.auth.Verify(token, service.TokenAccess)
				if err != nil {
					span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyRequester: token verification failed"))
					goto skipCheckAuthorization
				}

				ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, claims.Subject)
				ctx = context.WithValue(ctx, domain.RequesterRoleCtxKey, claims.Role)
				span.SetAttributes(attribute.String("RequesterId", claims.Subject))
			}
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireRole rejects requests whose requester is unauthenticated (401) or
// whose role is not in the allow-list (403).
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			requesterID, _ := ctx.Value(domain.RequesterIdCtxKey).(string)
			if requesterID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			role, _ := ctx.Value(domain.RequesterRoleCtxKey).(domain.Role)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
		}
	}
}

// RequesterID reads the authenticated requester id, empty when anonymous.
func RequesterID(c echo.Context) string {
	id, _ := c.Request().Context().Value(domain.RequesterIdCtxKey).(string)
	return id
}

// RequesterRole reads the authenticated requester role.
func RequesterRole(c echo.Context) domain.Role {
	role, _ := c.Request().Context().Value(domain.RequesterRoleCtxKey).(domain.Role)
	return role
}
