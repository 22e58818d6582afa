package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"grade-roster/pkg/response"
	"grade-roster/pkg/validate"
)

// MustGetGradeID 从路径参数中提取班级 ID。
// 非法 UUID 不可能对应任何记录，直接写入 404 并返回 false。
// 调用方应在 ok=false 时直接 return。
func MustGetGradeID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(c, "班级不存在")
		return "", false
	}
	return id, true
}

// bindErrorMessage 将绑定错误转为面向调用方的校验信息
// clocktime 规则失败时返回 timeMessage，其余（缺字段、类型错误、JSON 语法错误）返回 fallback
func bindErrorMessage(err error, timeMessage, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == validate.ClockTimeTag {
				return timeMessage
			}
		}
	}
	return fallback
}

// respondBindError 写入绑定失败响应
// 请求体超出上限时返回 413，其余返回 400
func respondBindError(c *gin.Context, err error, timeMessage, fallback string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CategoryPayloadTooLarge, "请求体过大")
		return
	}
	response.BadRequest(c, bindErrorMessage(err, timeMessage, fallback))
}

// storeFailure 记录错误到 gin 上下文（由日志中间件输出），并返回 500
func storeFailure(c *gin.Context, err error, expose bool) {
	_ = c.Error(err)
	details := ""
	if expose {
		details = err.Error()
	}
	response.StoreFailure(c, details)
}
