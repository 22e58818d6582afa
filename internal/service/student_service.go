package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"grade-roster/internal/dto"
	"grade-roster/internal/model"
	"grade-roster/internal/repository"
)

// StudentService 学生只读业务接口
//
// 排除策略：默认只返回 excluded 为 false 或 NULL 的学生，
// List 与 Count 使用同一策略；IncludeExcluded 显式开启时两者都包含已排除学生。
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error)
	Count(ctx context.Context, req *dto.StudentListRequest) (int64, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx, req.IncludeExcluded)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Bool("include_excluded", req.IncludeExcluded), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, nil
}

func (s *studentService) Count(ctx context.Context, req *dto.StudentListRequest) (int64, error) {
	total, err := s.repo.Student.Count(ctx, req.IncludeExcluded)
	if err != nil {
		s.logger.Error("统计学生数量失败", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// ── 内部辅助方法 ──

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:              st.ID,
		Name:            st.Name,
		GradeName:       st.GradeName,
		Time:            st.Time,
		Excluded:        st.IsExcluded(),
		ExclusionDate:   formatOptionalTime(st.ExclusionDate),
		InclusionDate:   formatOptionalTime(st.InclusionDate),
		Transferred:     st.Transferred != nil && *st.Transferred,
		TransferDate:    formatOptionalTime(st.TransferDate),
		OriginalGradeID: st.OriginalGradeID,
		CreatedAt:       st.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       st.UpdatedAt.Format(time.RFC3339),
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
