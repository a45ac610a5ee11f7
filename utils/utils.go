package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"logistics-org/database"
	"logistics-org/models/user"
	"logistics-org/types"
)

// maxLoggedBodySize caps request/response bodies stored by the async
// logger.
const maxLoggedBodySize = 8 * 1024

// GetUserByID retrieves a user by primary key from the database.
func GetUserByID(id uint) (*user.User, error) {
	var userModel user.User
	if err := database.DB.First(&userModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &userModel, nil
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry
// for the async logger. Password fields are masked and oversized bodies
// truncated before the snapshot leaves the handler.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeBody(c.Body())
	responseBody := sanitizeBody(c.Response().Body())

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

func sanitizeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBodySize {
		return fmt.Sprintf("[truncated, %d bytes]", len(body))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(append([]byte(nil), body...))
	}
	if _, ok := payload["password"]; ok {
		payload["password"] = "***"
		if masked, err := json.Marshal(payload); err == nil {
			return string(masked)
		}
	}
	return string(append([]byte(nil), body...))
}
