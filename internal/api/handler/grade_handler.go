package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"grade-roster/internal/dto"
	"grade-roster/internal/service"
	"grade-roster/pkg/response"
)

// GradeHandler 班级模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc          service.GradeService
	exposeStoreErrors bool
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService, exposeStoreErrors bool) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc, exposeStoreErrors: exposeStoreErrors}
}

// ListGrades 获取班级列表（按名称升序）
// GET /api/grades
func (h *GradeHandler) ListGrades(c *gin.Context) {
	grades, err := h.gradeSvc.List(c.Request.Context())
	if err != nil {
		storeFailure(c, err, h.exposeStoreErrors)
		return
	}

	response.OKList(c, grades, len(grades))
}

// GetGrade 获取班级详情及所属学生
// GET /api/grades/:id
func (h *GradeHandler) GetGrade(c *gin.Context) {
	id, ok := MustGetGradeID(c)
	if !ok {
		return
	}

	detail, err := h.gradeSvc.GetWithStudents(c.Request.Context(), id)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, detail)
}

// CreateGrade 创建班级
// POST /api/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err,
			service.ErrInvalidTimeFormat.Error(),
			service.ErrGradeFieldsRequired.Error(),
		)
		return
	}

	grade, err := h.gradeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.Created(c, grade)
}

// UpdateGrade 部分更新班级
// PUT /api/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	id, ok := MustGetGradeID(c)
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err,
			service.ErrInvalidTimeFormat.Error(),
			service.ErrGradeFieldType.Error(),
		)
		return
	}

	grade, err := h.gradeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// DeleteGrade 删除班级（仍有学生时拒绝）
// DELETE /api/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	id, ok := MustGetGradeID(c)
	if !ok {
		return
	}

	grade, err := h.gradeSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// handleGradeError 统一处理班级模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	var blocked *service.GradeHasStudentsError
	switch {
	case errors.As(err, &blocked):
		response.Conflict(c, service.ErrGradeHasStudents.Error(), dto.BlockingStudentsResponse{
			Students: blocked.Students,
			Count:    len(blocked.Students),
		})
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrGradeExists):
		response.Conflict(c, err.Error(), nil)
	case errors.Is(err, service.ErrGradeFieldsRequired),
		errors.Is(err, service.ErrGradeFieldType),
		errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, err.Error())
	default:
		storeFailure(c, err, h.exposeStoreErrors)
	}
}
