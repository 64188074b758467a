package model

// Submission 一份待评审的提交，queue_id 为自由分组标签（queue 非独立实体）
type Submission struct {
	UUIDBase
	QueueID string `gorm:"size:100;index;not null" json:"queueId"`
}

func (Submission) TableName() string {
	return "submissions"
}
