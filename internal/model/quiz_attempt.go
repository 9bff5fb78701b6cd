package model

import "time"

// QuizAttempt 一次提交的成绩快照，测验标题冗余保存
// swagger:model QuizAttempt
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID         uint      `gorm:"index;not null" json:"quizId"`
	QuizTitle      string    `gorm:"size:255" json:"quizTitle"`
	StudentName    string    `gorm:"size:100;index;not null" json:"studentName"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	TimeTaken      int       `json:"timeTaken"` // Seconds
	CompletedAt    time.Time `json:"completedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
