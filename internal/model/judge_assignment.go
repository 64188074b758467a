package model

// JudgeAssignment 模板 × Judge 的多对多关联行，除两个外键无其他属性
type JudgeAssignment struct {
	UUIDBase
	QuestionTemplateID string `gorm:"type:varchar(36);index;not null" json:"questionTemplateId"`
	JudgeID            string `gorm:"type:varchar(36);index;not null" json:"judgeId"`
}

func (JudgeAssignment) TableName() string {
	return "judge_assignments"
}
