package util

import (
	"net/http"

	"github.com/SilverKain/Orthography/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response — единый конверт всех публичных операций: либо success с
// полезной нагрузкой, либо success=false с человекочитаемым текстом
// ошибки. Наружу не уходит ни одно сырое исключение.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: false,
		Error:   message,
	})
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "Требуется авторизация")
}

func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, "Доступ запрещён")
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
