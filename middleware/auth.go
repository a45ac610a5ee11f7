package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"logistics-org/database"
	"logistics-org/models/user"
	"logistics-org/types"
	authTypes "logistics-org/types/auth"
)

// VerifyJWT verifies a bearer token string and returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// RequireRoles authenticates the bearer token, resolves the user row
// and places an Actor in c.Locals("actor"). With roles given, the
// actor's role must match one of them; with none, any authenticated
// user passes.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authentication required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := VerifyJWT(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid token subject",
				Status:  fiber.StatusUnauthorized,
			})
		}

		var u user.User
		if err := database.DB.First(&u, uint(sub)).Error; err != nil {
			status := fiber.StatusInternalServerError
			msg := "Database error"
			if err == gorm.ErrRecordNotFound {
				status = fiber.StatusUnauthorized
				msg = "User not found"
			}
			return c.Status(status).JSON(types.ApiResponse{
				Message: msg,
				Status:  status,
			})
		}

		actor := authTypes.Actor{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			City:     u.HomeCity(),
		}

		if len(roles) > 0 && !roleAllowed(actor.Role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Access denied. Insufficient role.",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("actor", actor)
		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequireAuth allows any authenticated user through.
func RequireAuth() fiber.Handler {
	return RequireRoles()
}

// ActorFromContext returns the Actor placed by RequireRoles.
func ActorFromContext(c *fiber.Ctx) (authTypes.Actor, bool) {
	actor, ok := c.Locals("actor").(authTypes.Actor)
	return actor, ok
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
