package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"grade-roster/internal/service"
	"grade-roster/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc         service.ExportService
	exposeStoreErrors bool
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, exposeStoreErrors bool) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, exposeStoreErrors: exposeStoreErrors}
}

// ExportRoster 导出班级学生名单
// GET /api/grades/:id/export
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	id, ok := MustGetGradeID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportRoster(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		_ = c.Error(err)
		response.InternalError(c)
	default:
		storeFailure(c, err, h.exposeStoreErrors)
	}
}
