package model

import "time"

const (
	EmailTypeReminder = "reminder"
	EmailTypeResults  = "results"

	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// swagger:model EmailLog
type EmailLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"size:100;not null" json:"email"`
	Type         string    `gorm:"size:20;index;not null" json:"type"`
	QuizID       *uint     `json:"quizId"`
	QuizTitle    string    `gorm:"size:255" json:"quizTitle"`
	Status       string    `gorm:"size:20;not null" json:"status"`
	Timestamp    time.Time `gorm:"index;not null" json:"timestamp"`
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
}

func (EmailLog) TableName() string {
	return "email_logs"
}
