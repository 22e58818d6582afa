package repository

import (
	"context"

	"gorm.io/gorm"

	"grade-roster/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	List(ctx context.Context, includeExcluded bool) ([]model.Student, error)
	Count(ctx context.Context, includeExcluded bool) (int64, error)
	// ListByGrade 按班级身份值对查询学生（含已排除学生），按姓名升序
	ListByGrade(ctx context.Context, identity model.GradeIdentity) ([]model.Student, error)
	// ReassignGrade 将所有属于 from 的学生改为 to，返回受影响行数
	ReassignGrade(ctx context.Context, from, to model.GradeIdentity) (int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

// notExcluded 仅保留 excluded 为 false 或 NULL 的学生
func notExcluded(db *gorm.DB) *gorm.DB {
	return db.Where("(excluded IS NULL OR excluded = ?)", false)
}

func (r *studentRepo) scoped(ctx context.Context, includeExcluded bool) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Student{})
	if !includeExcluded {
		db = db.Scopes(notExcluded)
	}
	return db
}

func (r *studentRepo) List(ctx context.Context, includeExcluded bool) ([]model.Student, error) {
	var students []model.Student
	err := r.scoped(ctx, includeExcluded).
		Order("name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Count(ctx context.Context, includeExcluded bool) (int64, error) {
	var total int64
	err := r.scoped(ctx, includeExcluded).Count(&total).Error
	return total, err
}

func (r *studentRepo) ListByGrade(ctx context.Context, identity model.GradeIdentity) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("grade_name = ? AND class_time = ?", identity.GradeName, identity.Time).
		Order("name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ReassignGrade(ctx context.Context, from, to model.GradeIdentity) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("grade_name = ? AND class_time = ?", from.GradeName, from.Time).
		Updates(map[string]interface{}{
			"grade_name": to.GradeName,
			"class_time": to.Time,
			"updated_at": gorm.Expr("NOW()"),
		})
	return result.RowsAffected, result.Error
}
