package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"healthcare-backend/config"
	"healthcare-backend/utils"
)

// Protected validates the bearer token and resolves the caller identity
// into locals ("userID", "email"). Refresh tokens are rejected here: only
// access tokens authenticate API calls.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return jwtError(c, utils.ErrInvalidToken)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return jwtError(c, utils.ErrInvalidToken)
			}

			if tokenType, _ := claims["token_type"].(string); tokenType != utils.TokenTypeAccess {
				return jwtError(c, utils.ErrInvalidToken)
			}

			userID, ok := claims["user_id"].(float64)
			if !ok || userID <= 0 {
				return jwtError(c, utils.ErrInvalidToken)
			}

			email, _ := claims["email"].(string)

			c.Locals("userID", uint(userID))
			c.Locals("email", email)

			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Fail(c, fiber.StatusUnauthorized,
		"Authentication credentials were not provided or are invalid.", nil)
}
