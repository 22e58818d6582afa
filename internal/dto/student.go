package dto

// ── 学生模块 DTO ──

// StudentListRequest 学生列表 / 计数查询参数
type StudentListRequest struct {
	// IncludeExcluded 为 true 时包含已排除（软删除）的学生
	IncludeExcluded bool `form:"includeExcluded"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	GradeName       string  `json:"gradeName"`
	Time            string  `json:"time"`
	Excluded        bool    `json:"excluded"`
	ExclusionDate   *string `json:"exclusionDate,omitempty"`
	InclusionDate   *string `json:"inclusionDate,omitempty"`
	Transferred     bool    `json:"transferred"`
	TransferDate    *string `json:"transferDate,omitempty"`
	OriginalGradeID *string `json:"originalGradeId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudentCountResponse 学生总数响应
type StudentCountResponse struct {
	TotalStudents int64 `json:"totalStudents"`
}
