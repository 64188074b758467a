package database

import (
	"fmt"
	"log"

	"qa_judge_backend/internal/config"
	"qa_judge_backend/internal/model"

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

	err = db.AutoMigrate(
		&model.Submission{},
		&model.QuestionTemplate{},
		&model.Question{},
		&model.Answer{},
		&model.Judge{},
		&model.JudgeAssignment{},
		&model.Evaluation{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认 Judge（空表时插入，避免新部署无任何评审者可选）
	var count int64
	db.Model(&model.Judge{}).Count(&count)
	if count == 0 {
		db.Create(&model.Judge{
			Name:   "Default Judge",
			Active: true,
		})
	}

	return db, nil
}
