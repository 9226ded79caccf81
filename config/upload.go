package config

type Upload struct {
	Size int    `mapstructure:"size"` // 稿件附件大小限制（MB）
	Path string `mapstructure:"path"` // 本地存储目录
}
