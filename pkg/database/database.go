package database

import (
	"fmt"
	"log"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedSampleQuiz(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 建表。表之间不声明外键级联，删除顺序由服务层控制。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAttempt{},
		&model.RetakePermission{},
		&model.Student{},
		&model.UserSession{},
		&model.EmailLog{},
	)
}

// SeedSampleQuiz 空库时插入一份示例测验
func SeedSampleQuiz(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		quiz := &model.Quiz{
			Title:       "Java Basics Quiz",
			Description: "Test your knowledge of Java fundamentals",
			TimeLimit:   30,
		}
		quiz.CreatedAt = now
		quiz.UpdatedAt = now
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		question := &model.Question{
			QuizID:       quiz.ID,
			QuestionText: "What is the main method signature in Java?",
			QuestionType: "multiple-choice",
		}
		if err := tx.Create(question).Error; err != nil {
			return err
		}

		options := []model.Option{
			{QuestionID: question.ID, OptionText: "public static void main(String[] args)", IsCorrect: true},
			{QuestionID: question.ID, OptionText: "public void main(String[] args)", IsCorrect: false},
			{QuestionID: question.ID, OptionText: "static void main(String[] args)", IsCorrect: false},
		}
		if err := tx.Create(&options).Error; err != nil {
			return err
		}

		log.Println("Sample data initialized successfully")
		return nil
	})
}
