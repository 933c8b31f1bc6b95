package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthcare-backend/blacklist"
	"healthcare-backend/config"
	"healthcare-backend/db"
	"healthcare-backend/models"
	"healthcare-backend/utils"
)

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate normalizes name/email in place and returns field errors.
func (in *RegisterInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" {
		errs.Add("name", "Name cannot be blank.")
	}
	if in.Email == "" {
		errs.Add("email", "Email is required.")
	} else if !utils.IsEmail(in.Email) {
		errs.Add("email", "Enter a valid email address.")
	}
	if !utils.IsStrongPassword(in.Password) {
		errs.Add("password", "Password must be at least 8 characters long and not entirely numeric.")
	}
	if in.Password != in.ConfirmPassword {
		errs.Add("confirm_password", "Passwords do not match.")
	}

	return errs
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshInput struct {
	Refresh string `json:"refresh"`
}

// Register handles POST /api/auth/register/
func Register(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(RegisterInput)
		if err := c.BodyParser(input); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
		}

		errs := input.Validate()

		if errs.Empty() {
			var existing models.User
			if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
				errs.Add("email", "A user with this email already exists.")
			}
		}
		if !errs.Empty() {
			return utils.Fail(c, fiber.StatusBadRequest, "Registration failed.", errs)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to hash password", nil)
		}

		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashed),
			IsActive: true,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			// A concurrent registration can slip past the existence check
			// and land on the unique index instead.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.Fail(c, fiber.StatusBadRequest, "Registration failed.", utils.FieldErrors{
					"email": {"A user with this email already exists."},
				})
			}
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user", nil)
		}

		access, refresh, err := utils.GenerateTokenPair(&user, cfg)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate tokens", nil)
		}

		return utils.Success(c, fiber.StatusCreated, "User registered successfully.", fiber.Map{
			"user": user,
			"tokens": fiber.Map{
				"access":  access,
				"refresh": refresh,
			},
		})
	}
}

// Login handles POST /api/auth/login/
func Login(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(LoginInput)
		if err := c.BodyParser(input); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
		}

		input.Email = strings.ToLower(strings.TrimSpace(input.Email))
		if input.Email == "" || input.Password == "" {
			return utils.Fail(c, fiber.StatusBadRequest, "Login failed.", utils.FieldErrors{
				"detail": {"Both email and password are required."},
			})
		}

		// Unknown email and wrong password take the same exit so the
		// response never reveals whether an account exists.
		var user models.User
		found := db.DB.Where("email = ?", input.Email).First(&user).RowsAffected > 0
		if !found || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			return loginRejected(c)
		}
		if !user.IsActive {
			return loginRejected(c)
		}

		access, refresh, err := utils.GenerateTokenPair(&user, cfg)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate tokens", nil)
		}

		return utils.Success(c, fiber.StatusOK, "Login successful.", fiber.Map{
			"user": user,
			"tokens": fiber.Map{
				"access":  access,
				"refresh": refresh,
			},
		})
	}
}

func loginRejected(c *fiber.Ctx) error {
	return utils.Fail(c, fiber.StatusUnauthorized, "Login failed.", utils.FieldErrors{
		"detail": {"Invalid email or password. Please try again."},
	})
}

// RefreshToken handles POST /api/auth/token/refresh/. The presented refresh
// token is rotated: its jti is blacklisted and a new pair is issued.
func RefreshToken(cfg *config.Config, store blacklist.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(refreshInput)
		if err := c.BodyParser(input); err != nil || input.Refresh == "" {
			return utils.Fail(c, fiber.StatusBadRequest, "Refresh token is required.", nil)
		}

		claims, err := utils.ParseToken(input.Refresh, cfg.JWTSecret)
		if err != nil || claims.TokenType != utils.TokenTypeRefresh {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token.", nil)
		}

		revoked, err := store.IsRevoked(claims.ID)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to check token", nil)
		}
		if revoked {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token.", nil)
		}

		var user models.User
		if db.DB.Where("id = ?", claims.UserID).First(&user).RowsAffected == 0 || !user.IsActive {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token.", nil)
		}

		if err := store.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to rotate token", nil)
		}

		access, refresh, err := utils.GenerateTokenPair(&user, cfg)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate tokens", nil)
		}

		return utils.Success(c, fiber.StatusOK, "Token refreshed successfully.", fiber.Map{
			"tokens": fiber.Map{
				"access":  access,
				"refresh": refresh,
			},
		})
	}
}

// Logout handles POST /api/auth/logout/ by blacklisting the refresh token.
// Revoking an already-revoked token is a no-op success.
func Logout(cfg *config.Config, store blacklist.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(refreshInput)
		if err := c.BodyParser(input); err != nil || input.Refresh == "" {
			return utils.Fail(c, fiber.StatusBadRequest, "Refresh token is required.", nil)
		}

		claims, err := utils.ParseToken(input.Refresh, cfg.JWTSecret)
		if err != nil || claims.TokenType != utils.TokenTypeRefresh {
			return utils.Fail(c, fiber.StatusBadRequest, "Invalid or expired token.", nil)
		}

		if err := store.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to revoke token", nil)
		}

		return utils.Success(c, fiber.StatusOK, "Logged out successfully.", nil)
	}
}

// Me handles GET /api/auth/me/
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		var user models.User
		if db.DB.Where("id = ?", userID).First(&user).RowsAffected == 0 {
			return utils.NotFound(c, "The requested resource was not found.")
		}

		return utils.Success(c, fiber.StatusOK, "User profile retrieved.", fiber.Map{
			"user": user,
		})
	}
}
