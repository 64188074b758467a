package model

// Question 模板在某份提交内的实例，content 为展示用的冗余题目文本
type Question struct {
	UUIDBase
	SubmissionID       string `gorm:"type:varchar(36);index;not null" json:"submissionId"`
	QuestionTemplateID string `gorm:"type:varchar(36);index;not null" json:"questionTemplateId"`
	Content            string `gorm:"type:text" json:"content"`
}

func (Question) TableName() string {
	return "questions"
}
