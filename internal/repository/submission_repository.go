package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) ListByQueueID(queueID string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("queue_id = ?", queueID).Order("created_at asc").Find(&subs).Error
	return subs, err
}

// ListQueueIDs 返回去重后的 queue 标签集合（queue 不是独立实体）
func (r *SubmissionRepository) ListQueueIDs() ([]string, error) {
	var queues []string
	err := r.DB.Model(&model.Submission{}).
		Distinct("queue_id").
		Order("queue_id asc").
		Pluck("queue_id", &queues).Error
	return queues, err
}
