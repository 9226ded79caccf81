package redis_ser

import "strings"

const (
	Prefix        = "journal:"
	RefreshToken  = "refresh_token:user_id:"
	ArticlePrefix = "article"
)

func GetRedisKey(key string) string {
	return Prefix + key
}

// BuildKey 用冒号拼接多段键名并加上全局前缀
func BuildKey(parts ...string) string {
	return Prefix + strings.Join(parts, ":")
}
