package model

// swagger:model Student
type Student struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
	Deleted  bool   `gorm:"not null;default:false" json:"deleted"`
}

func (Student) TableName() string {
	return "students"
}
