package dto

// ── 班级模块 DTO ──

// CreateGradeRequest 创建班级请求
type CreateGradeRequest struct {
	GradeName string `json:"gradeName" binding:"required"`
	Time      string `json:"time"      binding:"required,clocktime"` // "08:00"
}

// UpdateGradeRequest 更新班级请求（部分更新：nil 表示不修改，空字符串仍会写入）
type UpdateGradeRequest struct {
	GradeName *string `json:"gradeName"`
	Time      *string `json:"time"`
}

// GradeResponse 班级信息响应
type GradeResponse struct {
	ID        string `json:"id"`
	GradeName string `json:"gradeName"`
	Time      string `json:"time"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// GradeDetailResponse 班级详情（含所属学生）
type GradeDetailResponse struct {
	GradeResponse
	Students     []StudentResponse `json:"students"`
	StudentCount int               `json:"studentCount"`
}

// BlockingStudentsResponse 删除被阻止时返回的学生列表
type BlockingStudentsResponse struct {
	Students []StudentBrief `json:"students"`
	Count    int            `json:"count"`
}
