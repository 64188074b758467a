package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionTemplateRepository struct {
	DB *gorm.DB
}

func NewQuestionTemplateRepository(db *gorm.DB) *QuestionTemplateRepository {
	return &QuestionTemplateRepository{DB: db}
}

func (r *QuestionTemplateRepository) Create(t *model.QuestionTemplate) error {
	return r.DB.Create(t).Error
}

func (r *QuestionTemplateRepository) FindByID(id string) (*model.QuestionTemplate, error) {
	var t model.QuestionTemplate
	err := r.DB.First(&t, "id = ?", id).Error
	return &t, err
}

func (r *QuestionTemplateRepository) List() ([]model.QuestionTemplate, error) {
	var ts []model.QuestionTemplate
	err := r.DB.Order("created_at desc").Find(&ts).Error
	return ts, err
}
