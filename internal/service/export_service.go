package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"grade-roster/internal/repository"
	pkgerrors "grade-roster/pkg/errors"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

const rosterSheet = "名单"

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 名单包含该班级的全部学生（含已排除学生，状态列标明）。
type ExportService interface {
	// ExportRoster 导出班级学生名单为 Excel，返回内容与建议文件名
	ExportRoster(ctx context.Context, gradeID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportRoster(ctx context.Context, gradeID string) (*bytes.Buffer, string, error) {
	grade, err := s.repo.Grade.GetByID(ctx, gradeID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, "", ErrGradeNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", gradeID), zap.Error(err))
		return nil, "", err
	}

	students, err := s.repo.Student.ListByGrade(ctx, grade.Identity())
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.String("id", gradeID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(rosterSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(rosterSheet, "A", "A", 8)
	f.SetColWidth(rosterSheet, "B", "B", 28)
	f.SetColWidth(rosterSheet, "C", "E", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(rosterSheet, "A1", fmt.Sprintf("%s %s 学生名单", grade.GradeName, grade.Time))
	f.MergeCell(rosterSheet, "A1", "E1")
	f.SetCellStyle(rosterSheet, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"序号", "姓名", "状态", "入学日期", "转入"}
	for i, h := range headers {
		f.SetCellValue(rosterSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(rosterSheet, "A2", "E2", headerStyle)

	// 数据行
	row := 3
	for i := range students {
		st := &students[i]
		status := "在读"
		if st.IsExcluded() {
			status = "已排除"
		}
		inclusion := "-"
		if st.InclusionDate != nil {
			inclusion = st.InclusionDate.Format("2006-01-02")
		}
		transferred := "否"
		if st.Transferred != nil && *st.Transferred {
			transferred = "是"
		}

		f.SetCellValue(rosterSheet, cell("A", row), i+1)
		f.SetCellValue(rosterSheet, cell("B", row), st.Name)
		f.SetCellValue(rosterSheet, cell("C", row), status)
		f.SetCellValue(rosterSheet, cell("D", row), inclusion)
		f.SetCellValue(rosterSheet, cell("E", row), transferred)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("名单_%s_%s.xlsx", grade.GradeName, strings.ReplaceAll(grade.Time, ":", ""))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
