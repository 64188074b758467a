package model

type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictFail    Verdict = "fail"
	VerdictPartial Verdict = "partial"
	// VerdictPending 仅用于评审流程之外创建的行，流水线本身不会产出
	VerdictPending Verdict = "pending"
)

// Evaluation 一次评审任务的产出，只追加不更新；重跑同一 queue 会追加新行
type Evaluation struct {
	UUIDBase
	SubmissionID string  `gorm:"type:varchar(36);index;not null" json:"submissionId"`
	QuestionID   string  `gorm:"type:varchar(36);index;not null" json:"questionId"`
	JudgeID      string  `gorm:"type:varchar(36);index;not null" json:"judgeId"`
	Verdict      Verdict `gorm:"size:20;default:'pending'" json:"verdict"`
	Reasoning    string  `gorm:"type:text" json:"reasoning"`

	Judge    *Judge    `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
