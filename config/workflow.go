package config

type Workflow struct {
	// 稿件滞留提醒阈值（天），超过该天数未处理的投稿会提醒编辑部
	StaleDays int `mapstructure:"stale_days"`
	// 滞留提醒接收角色，默认主编
	ReminderRole string `mapstructure:"reminder_role"`
}
