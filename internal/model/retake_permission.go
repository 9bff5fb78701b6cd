package model

import "time"

// RetakePermission 重测授权。QuizID 为空的是旧数据，只能按 QuizTitle 匹配。
// 授权不会被物理删除，失效后作为历史记录保留。
// swagger:model RetakePermission
type RetakePermission struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentName string    `gorm:"size:100;index:idx_retake_student_active;not null" json:"studentName"`
	QuizID      *uint     `gorm:"index" json:"quizId"`
	QuizTitle   string    `gorm:"size:255" json:"quizTitle"`
	AllowedAt   time.Time `json:"allowedAt"`
	Active      bool      `gorm:"index:idx_retake_student_active;not null;default:true" json:"active"`
}

func (RetakePermission) TableName() string {
	return "retake_permissions"
}
