package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(a *model.Answer) error {
	return r.DB.Create(a).Error
}

func (r *AnswerRepository) ListBySubmission(submissionID string) ([]model.Answer, error) {
	var as []model.Answer
	err := r.DB.Where("submission_id = ?", submissionID).Order("created_at asc").Find(&as).Error
	return as, err
}
