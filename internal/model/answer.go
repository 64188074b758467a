package model

type Answer struct {
	UUIDBase
	SubmissionID string `gorm:"type:varchar(36);index;not null" json:"submissionId"`
	QuestionID   string `gorm:"type:varchar(36);index;not null" json:"questionId"`
	Content      string `gorm:"type:text" json:"content"`
}

func (Answer) TableName() string {
	return "answers"
}
