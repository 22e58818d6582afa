package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"grade-roster/internal/model"
	"grade-roster/internal/repository"
)

// ── Mock GradeRepository ──
// 以值保存记录，避免调用方持有的指针修改存储内容

type mockGradeRepo struct {
	grades map[string]model.Grade
	seq    int

	listErr   error
	getErr    error
	findErr   error
	updateErr error
	deleteErr error
	// skipIdentityLookup 模拟并发竞态：FindByIdentity 总是查不到，只能依赖唯一约束
	skipIdentityLookup bool
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]model.Grade)}
}

func (m *mockGradeRepo) put(g model.Grade) {
	m.grades[g.ID] = g
}

func (m *mockGradeRepo) List(_ context.Context) ([]model.Grade, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Grade, 0, len(m.grades))
	for _, g := range m.grades {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].GradeName != result[j].GradeName {
			return result[i].GradeName < result[j].GradeName
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (m *mockGradeRepo) GetByID(_ context.Context, id string) (*model.Grade, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if g, ok := m.grades[id]; ok {
		return &g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) FindByIdentity(_ context.Context, identity model.GradeIdentity, excludeID string) (*model.Grade, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.skipIdentityLookup {
		return nil, gorm.ErrRecordNotFound
	}
	for _, g := range m.grades {
		if g.ID != excludeID && g.Identity() == identity {
			found := g
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// violatesUnique 模拟 uq_grades_identity 唯一约束
func (m *mockGradeRepo) violatesUnique(g *model.Grade) bool {
	for _, existing := range m.grades {
		if existing.ID != g.ID && existing.Identity() == g.Identity() {
			return true
		}
	}
	return false
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if m.violatesUnique(grade) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_grades_identity"}
	}
	m.seq++
	if grade.ID == "" {
		grade.ID = fmt.Sprintf("grade-%03d", m.seq)
	}
	now := time.Now()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	m.put(*grade)
	return nil
}

func (m *mockGradeRepo) Update(_ context.Context, grade *model.Grade, columns ...string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.grades[grade.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.violatesUnique(grade) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_grades_identity"}
	}
	for _, col := range columns {
		switch col {
		case "grade_name":
			existing.GradeName = grade.GradeName
		case "class_time":
			existing.Time = grade.Time
		}
	}
	existing.UpdatedAt = grade.UpdatedAt
	m.put(existing)
	return nil
}

func (m *mockGradeRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.grades[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.grades, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]model.Student

	listErr     error
	countErr    error
	byGradeErr  error
	reassignErr error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]model.Student)}
}

func (m *mockStudentRepo) put(s model.Student) {
	m.students[s.ID] = s
}

func (m *mockStudentRepo) filtered(includeExcluded bool) []model.Student {
	result := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		if !includeExcluded && s.IsExcluded() {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (m *mockStudentRepo) List(_ context.Context, includeExcluded bool) ([]model.Student, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.filtered(includeExcluded), nil
}

func (m *mockStudentRepo) Count(_ context.Context, includeExcluded bool) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.filtered(includeExcluded))), nil
}

func (m *mockStudentRepo) ListByGrade(_ context.Context, identity model.GradeIdentity) ([]model.Student, error) {
	if m.byGradeErr != nil {
		return nil, m.byGradeErr
	}
	var result []model.Student
	for _, s := range m.filtered(true) {
		if s.BelongsTo(identity) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) ReassignGrade(_ context.Context, from, to model.GradeIdentity) (int64, error) {
	if m.reassignErr != nil {
		return 0, m.reassignErr
	}
	var affected int64
	for id, s := range m.students {
		if s.BelongsTo(from) {
			s.GradeName = to.GradeName
			s.Time = to.Time
			m.students[id] = s
			affected++
		}
	}
	return affected, nil
}

// ── 上下文感知包装 ──

// cancelOnUpdateGradeRepo 写入成功后立即触发 cancel，模拟客户端在改名提交后断开
type cancelOnUpdateGradeRepo struct {
	*mockGradeRepo
	cancel context.CancelFunc
}

func (m *cancelOnUpdateGradeRepo) Update(ctx context.Context, grade *model.Grade, columns ...string) error {
	if err := m.mockGradeRepo.Update(ctx, grade, columns...); err != nil {
		return err
	}
	m.cancel()
	return nil
}

// ctxStudentRepo 与驱动一致：上下文已取消时直接返回 ctx.Err()
type ctxStudentRepo struct {
	*mockStudentRepo
}

func (m *ctxStudentRepo) ReassignGrade(ctx context.Context, from, to model.GradeIdentity) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return m.mockStudentRepo.ReassignGrade(ctx, from, to)
}

// deleteDuringListStudentRepo 查询学生时删除班级，模拟两次读取之间的并发删除
type deleteDuringListStudentRepo struct {
	*mockStudentRepo
	grades  *mockGradeRepo
	gradeID string
}

func (m *deleteDuringListStudentRepo) ListByGrade(ctx context.Context, identity model.GradeIdentity) ([]model.Student, error) {
	delete(m.grades.grades, m.gradeID)
	return m.mockStudentRepo.ListByGrade(ctx, identity)
}

// ── 聚合 ──

func newMockRepository() (*repository.Repository, *mockGradeRepo, *mockStudentRepo) {
	gradeRepo := newMockGradeRepo()
	studentRepo := newMockStudentRepo()
	return &repository.Repository{
		Grade:   gradeRepo,
		Student: studentRepo,
	}, gradeRepo, studentRepo
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
