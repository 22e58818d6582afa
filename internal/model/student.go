package model

import "time"

// Student 学生 — 对应 students
// GradeName/Time 为所属班级身份的冗余副本，班级改名时需级联更新
type Student struct {
	ID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string     `gorm:"type:varchar(150);not null"                     json:"name"`
	GradeName       string     `gorm:"column:grade_name;type:varchar(100);not null"   json:"gradeName"`
	Time            string     `gorm:"column:class_time;type:varchar(5);not null"     json:"time"`
	Excluded        *bool      `gorm:"default:false"                                  json:"excluded"` // 软删除标记，NULL 视为未排除
	ExclusionDate   *time.Time `json:"exclusionDate,omitempty"`
	InclusionDate   *time.Time `json:"inclusionDate,omitempty"`
	Transferred     *bool      `gorm:"default:false" json:"transferred"`
	TransferDate    *time.Time `json:"transferDate,omitempty"`
	OriginalGradeID *string    `gorm:"type:uuid" json:"originalGradeId,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// IsExcluded 排除标记为 NULL 时按未排除处理
func (s *Student) IsExcluded() bool {
	return s.Excluded != nil && *s.Excluded
}

// BelongsTo 判断学生是否属于给定身份的班级
func (s *Student) BelongsTo(id GradeIdentity) bool {
	return s.GradeName == id.GradeName && s.Time == id.Time
}
