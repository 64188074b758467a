package model

// QuestionTemplate 可复用的题目定义，Judge 分配挂在模板上而非具体题目实例
type QuestionTemplate struct {
	UUIDBase
	Content string `gorm:"type:text;not null" json:"content"`
}

func (QuestionTemplate) TableName() string {
	return "question_templates"
}
