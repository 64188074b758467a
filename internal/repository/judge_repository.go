package repository

import (
	"qa_judge_backend/internal/model"

	"gorm.io/gorm"
)

type JudgeRepository struct {
	DB *gorm.DB
}

func NewJudgeRepository(db *gorm.DB) *JudgeRepository {
	return &JudgeRepository{DB: db}
}

func (r *JudgeRepository) Create(j *model.Judge) error {
	return r.DB.Create(j).Error
}

func (r *JudgeRepository) FindByID(id string) (*model.Judge, error) {
	var j model.Judge
	err := r.DB.First(&j, "id = ?", id).Error
	return &j, err
}

func (r *JudgeRepository) List() ([]model.Judge, error) {
	var js []model.Judge
	err := r.DB.Order("created_at desc").Find(&js).Error
	return js, err
}

func (r *JudgeRepository) Update(j *model.Judge) error {
	return r.DB.Save(j).Error
}

// Deactivate 软停用：只翻转 active 标志，不删除历史数据
func (r *JudgeRepository) Deactivate(id string) error {
	return r.DB.Model(&model.Judge{}).Where("id = ?", id).Update("active", false).Error
}
