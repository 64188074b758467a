package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type JudgeAssignmentRepository struct {
	DB *gorm.DB
}

func NewJudgeAssignmentRepository(db *gorm.DB) *JudgeAssignmentRepository {
	return &JudgeAssignmentRepository{DB: db}
}

func (r *JudgeAssignmentRepository) Create(a *model.JudgeAssignment) error {
	return r.DB.Create(a).Error
}

func (r *JudgeAssignmentRepository) ListByTemplate(templateID string) ([]model.JudgeAssignment, error) {
	var as []model.JudgeAssignment
	err := r.DB.Where("question_template_id = ?", templateID).Find(&as).Error
	return as, err
}

func (r *JudgeAssignmentRepository) DeleteByTemplate(templateID string) error {
	return r.DB.Where("question_template_id = ?", templateID).Delete(&model.JudgeAssignment{}).Error
}
