package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) ListBySubmission(submissionID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("submission_id = ?", submissionID).Order("created_at asc").Find(&qs).Error
	return qs, err
}
