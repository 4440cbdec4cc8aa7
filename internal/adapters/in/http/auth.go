package http

import (
	"net/http"

	"parcel/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey = "token"
	actorContextKey = "actorID"
)

// Authenticate verifies the HS256 bearer token and stores its subject as
// the acting user. Roles are not taken from the token: sender and traveler
// come from the records, admin from the identity provider.
func Authenticate(secret []byte) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token").SetInternal(err)
		},
	})
	return []echo.MiddlewareFunc{verify, actorFromToken}
}

func actorFromToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := ctx.Get(tokenContextKey).(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
		}
		actorID, err := kernel.UUIDFromString(subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "token subject is not a user id")
		}

		ctx.Set(actorContextKey, actorID)
		return next(ctx)
	}
}

func actorID(ctx echo.Context) (kernel.UUID, error) {
	id, ok := ctx.Get(actorContextKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
