package model

// Judge 评审者画像：rubric（Prompt）与模型名为空时运行期回退到内置默认值。
// 停用是软操作（Active 置 false），不删除历史 Evaluation 和分配。
// Active 不带列默认值：带 default 标签时 gorm 在插入时跳过零值字段，
// 显式创建的停用 Judge 会被存成启用。未指定时的「默认启用」由服务层负责。
type Judge struct {
	UUIDBase
	Name      string  `gorm:"size:100;not null" json:"name"`
	Prompt    *string `gorm:"type:text" json:"prompt"`
	ModelName *string `gorm:"size:100" json:"modelName"`
	Active    bool    `gorm:"not null" json:"active"`
}

func (Judge) TableName() string {
	return "judges"
}
