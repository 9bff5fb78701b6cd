package model

// swagger:model Question
type Question struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID       uint     `gorm:"index;not null" json:"quizId"`
	QuestionText string   `gorm:"type:text;not null" json:"questionText"`
	QuestionType string   `gorm:"size:50;not null" json:"questionType"` // MULTIPLE_CHOICE, TRUE_FALSE ...
	Options      []Option `gorm:"-" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	OptionText string `gorm:"size:500;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
