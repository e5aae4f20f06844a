package util

import (
	"errors"
	"net/http"

	"github.com/PriyanshVijay26/quiz-master/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	Message(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, message string, data interface{}) {
	Message(c, http.StatusCreated, message, data)
}

func Message(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrCredentialsRequired, http.StatusBadRequest},
	{ErrInvalidDOB, http.StatusBadRequest},
	{ErrSubjectNameRequired, http.StatusBadRequest},
	{ErrChapterNameRequired, http.StatusBadRequest},
	{ErrInvalidQuizDate, http.StatusBadRequest},
	{ErrInvalidQuizDuration, http.StatusBadRequest},
	{ErrQuestionRequired, http.StatusBadRequest},
	{ErrInvalidCorrectOption, http.StatusBadRequest},
	{ErrScoreRequired, http.StatusBadRequest},
	{ErrRecordingRequired, http.StatusBadRequest},
	{ErrMessageRequired, http.StatusBadRequest},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrUserInactive, http.StatusUnauthorized},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrSubjectNotFound, http.StatusNotFound},
	{ErrChapterNotFound, http.StatusNotFound},
	{ErrQuizNotFound, http.StatusNotFound},
	{ErrQuestionNotFound, http.StatusNotFound},
	{ErrScoreNotFound, http.StatusNotFound},
	{ErrRecipientNotFound, http.StatusNotFound},
	{ErrEmailRegistered, http.StatusConflict},
	{ErrQuizAlreadyAttempted, http.StatusConflict},
}

// HandleError 将业务错误映射为 HTTP 状态码；未知错误返回 500，并原样回显错误信息
func HandleError(c *gin.Context, action string, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			Error(c, m.status, m.err.Error())
			return
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, Response{
			Code:    http.StatusConflict,
			Message: action,
			Error:   err.Error(),
		})
		return
	}

	logger.Log.Error(action, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: action,
		Error:   err.Error(),
	})
}
