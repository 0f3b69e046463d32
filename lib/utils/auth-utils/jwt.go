package authutils

import (
	"time"

	"expense-claims-front/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetToken выпускает токен сессии, sub - идентификатор сессии
func GetToken(sessionID, empCode, empName string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"sub":  sessionID,
		"code": empCode,
		"name": empName,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

// GetSessionID достает идентификатор сессии из токена запроса
func GetSessionID(ctx *fiber.Ctx) string {
	claims := GetClaims(ctx)
	sub, _ := claims["sub"].(string)
	return sub
}
