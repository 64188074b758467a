package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

func (r *EvaluationRepository) Create(e *model.Evaluation) error {
	return r.DB.Create(e).Error
}

func (r *EvaluationRepository) ListBySubmission(submissionID string) ([]model.Evaluation, error) {
	var es []model.Evaluation
	err := r.DB.Preload("Judge").Preload("Question").
		Where("submission_id = ?", submissionID).
		Order("created_at desc").
		Find(&es).Error
	return es, err
}

// ListByQueue 结果页用：按 queue 标签关联 submissions 取全部评审结果
func (r *EvaluationRepository) ListByQueue(queueID string) ([]model.Evaluation, error) {
	var es []model.Evaluation
	err := r.DB.Preload("Judge").Preload("Question").
		Joins("JOIN submissions ON submissions.id = evaluations.submission_id").
		Where("submissions.queue_id = ? AND submissions.deleted_at IS NULL", queueID).
		Order("evaluations.created_at desc").
		Find(&es).Error
	return es, err
}
