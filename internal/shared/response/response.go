package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody là error envelope thống nhất của API: { "error": "<message>" }
// Frontend đọc đúng field "error" nên KHÔNG đổi shape này.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON trả success payload trực tiếp (entity/list), không wrap thêm envelope
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error trả error envelope với HTTP status tương ứng
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// Common error responses

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
