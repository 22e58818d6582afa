package repository

import (
	"context"

	"gorm.io/gorm"

	"grade-roster/internal/model"
)

// GradeRepository 班级数据访问接口
type GradeRepository interface {
	List(ctx context.Context) ([]model.Grade, error)
	GetByID(ctx context.Context, id string) (*model.Grade, error)
	// FindByIdentity 按 (gradeName, time) 查找班级，excludeID 非空时排除该记录
	// 无匹配时返回 gorm.ErrRecordNotFound
	FindByIdentity(ctx context.Context, identity model.GradeIdentity, excludeID string) (*model.Grade, error)
	Create(ctx context.Context, grade *model.Grade) error
	// Update 仅写入 columns 指定的列（及 updated_at），按主键定位
	Update(ctx context.Context, grade *model.Grade, columns ...string) error
	Delete(ctx context.Context, id string) error
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) List(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Order("grade_name ASC, class_time ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) GetByID(ctx context.Context, id string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) FindByIdentity(ctx context.Context, identity model.GradeIdentity, excludeID string) (*model.Grade, error) {
	var grade model.Grade
	db := r.db.WithContext(ctx).
		Where("grade_name = ? AND class_time = ?", identity.GradeName, identity.Time)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Take(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepo) Update(ctx context.Context, grade *model.Grade, columns ...string) error {
	if grade.ID == "" {
		return gorm.ErrMissingWhereClause
	}
	result := r.db.WithContext(ctx).
		Model(grade).
		Select(append(columns, "updated_at")).
		Updates(grade)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gradeRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return gorm.ErrMissingWhereClause
	}
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Grade{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
