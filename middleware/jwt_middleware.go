package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"expense-claims-front/config"
	claimform "expense-claims-front/lib/claim-form"
	authutils "expense-claims-front/lib/utils/auth-utils"
	"expense-claims-front/models"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
	})
}

const sessionLocalKey = "claim_session"

// SessionRequired проверяет, что сессия из токена еще жива:
// валидный токен с удаленной сессией это 401, а не новая сессия
func SessionRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := authutils.GetSessionID(ctx)
		if sessionID == "" {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}
		sess := claimform.Instance.GetSession(sessionID)
		if sess == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}
		ctx.Locals(sessionLocalKey, sess)
		return ctx.Next()
	}
}

// GetSession возвращает сессию, положенную SessionRequired
func GetSession(ctx *fiber.Ctx) *models.Session {
	sess, _ := ctx.Locals(sessionLocalKey).(*models.Session)
	return sess
}
