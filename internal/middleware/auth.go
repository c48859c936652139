package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// principalKey is the context key under which the resolved principal is stored.
const principalKey = "principal"

// JWT returns the token-verification middleware. A missing, malformed,
// expired, or tampered bearer token is rejected with 401 before any handler
// runs; there is no anonymous access to guarded routes.
func JWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
		},
	})
}

// ResolvePrincipal runs after JWT and turns the verified claims into a user
// record. A token whose subject no longer resolves to a user is treated as
// invalid, not as a server error.
func ResolvePrincipal(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Subject == "" {
				return unauthorized()
			}

			user, err := userRepo.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				// stale token referencing a deleted or renamed principal
				return unauthorized()
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// Principal returns the authenticated user resolved by ResolvePrincipal.
// Handlers downstream of the guard trust this value without re-verifying the
// token.
func Principal(c echo.Context) (*model.User, error) {
	user, ok := c.Get(principalKey).(*model.User)
	if !ok || user == nil {
		return nil, unauthorized()
	}
	return user, nil
}

func unauthorized() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
