package handler

import (
	"github.com/gin-gonic/gin"

	"grade-roster/internal/dto"
	"grade-roster/internal/service"
	"grade-roster/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器（只读）
type StudentHandler struct {
	studentSvc        service.StudentService
	exposeStoreErrors bool
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, exposeStoreErrors bool) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, exposeStoreErrors: exposeStoreErrors}
}

// ListStudents 获取学生列表（默认不含已排除学生）
// GET /api/students?includeExcluded=true
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "includeExcluded 必须为布尔值")
		return
	}

	students, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		storeFailure(c, err, h.exposeStoreErrors)
		return
	}

	response.OKList(c, students, len(students))
}

// CountStudents 获取学生总数（与列表使用同一排除策略）
// GET /api/students/count
func (h *StudentHandler) CountStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "includeExcluded 必须为布尔值")
		return
	}

	total, err := h.studentSvc.Count(c.Request.Context(), &req)
	if err != nil {
		storeFailure(c, err, h.exposeStoreErrors)
		return
	}

	response.OK(c, dto.StudentCountResponse{TotalStudents: total})
}
