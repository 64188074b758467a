package service

import (
	"qa_judge_backend/internal/model"
)

type judgeStore interface {
	Create(j *model.Judge) error
	FindByID(id string) (*model.Judge, error)
	List() ([]model.Judge, error)
	Update(j *model.Judge) error
	Deactivate(id string) error
}

type assignmentStore interface {
	Create(a *model.JudgeAssignment) error
	ListByTemplate(templateID string) ([]model.JudgeAssignment, error)
	DeleteByTemplate(templateID string) error
}

type JudgeService struct {
	judges      judgeStore
	assignments assignmentStore
}

func NewJudgeService(judges judgeStore, assignments assignmentStore) *JudgeService {
	return &JudgeService{judges: judges, assignments: assignments}
}

type JudgeRequest struct {
	Name      string  `json:"name" binding:"required"`
	Prompt    *string `json:"prompt"`
	ModelName *string `json:"modelName"`
	Active    *bool   `json:"active"`
}

func (s *JudgeService) CreateJudge(req JudgeRequest) (*model.Judge, error) {
	judge := &model.Judge{
		Name:      req.Name,
		Prompt:    req.Prompt,
		ModelName: req.ModelName,
		Active:    true,
	}
	if req.Active != nil {
		judge.Active = *req.Active
	}
	if err := s.judges.Create(judge); err != nil {
		return nil, err
	}
	return judge, nil
}

func (s *JudgeService) GetJudge(id string) (*model.Judge, error) {
	return s.judges.FindByID(id)
}

func (s *JudgeService) ListJudges() ([]model.Judge, error) {
	return s.judges.List()
}

func (s *JudgeService) UpdateJudge(id string, req JudgeRequest) (*model.Judge, error) {
	judge, err := s.judges.FindByID(id)
	if err != nil {
		return nil, err
	}
	judge.Name = req.Name
	judge.Prompt = req.Prompt
	judge.ModelName = req.ModelName
	if req.Active != nil {
		judge.Active = *req.Active
	}
	if err := s.judges.Update(judge); err != nil {
		return nil, err
	}
	return judge, nil
}

// DeactivateJudge 软停用：历史 Evaluation 和分配保留，只是不再进入后续任务生成
func (s *JudgeService) DeactivateJudge(id string) error {
	return s.judges.Deactivate(id)
}

func (s *JudgeService) ListAssignments(templateID string) ([]model.JudgeAssignment, error) {
	return s.assignments.ListByTemplate(templateID)
}

// SetAssignmentsForTemplate 整体替换一个模板的分配集：先删光再逐条插入。
// 删除或插入一旦出错立即返回，不做补偿回滚——删除成功后插入半途失败会留下
// 不完整的分配集（已知非原子序列）。输入里的重复 id 会产生重复行，不去重。
func (s *JudgeService) SetAssignmentsForTemplate(templateID string, judgeIDs []string) error {
	if err := s.assignments.DeleteByTemplate(templateID); err != nil {
		return err
	}
	for _, judgeID := range judgeIDs {
		a := &model.JudgeAssignment{
			QuestionTemplateID: templateID,
			JudgeID:            judgeID,
		}
		if err := s.assignments.Create(a); err != nil {
			return err
		}
	}
	return nil
}
