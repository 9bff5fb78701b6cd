package model

import "time"

// Quiz 测验聚合根，题目与选项随测验一起删除。
// 时间戳由服务层按调用方时钟写入，关闭 gorm 的自动维护。
// swagger:model Quiz
type Quiz struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TimeLimit   int       `gorm:"not null" json:"timeLimit"` // Minutes
	CreatedAt   time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizDetail 测验及其完整题目树
type QuizDetail struct {
	Quiz
	Questions []Question `json:"questions"`
}
