package redis_ser

import (
	"context"
	"strconv"
	"time"

	"journal/global"
)

// 添加令牌黑名单相关
const (
	TokenBlacklist = "token_blacklist:"
	BlacklistTTL   = 30 * time.Minute // 略大于 access token 的有效期
)

// 添加登出时令牌处理
func InvalidateTokens(userID uint, accessToken string) error {
	// 将 access token 加入黑名单
	accessTokenKey := GetRedisKey(TokenBlacklist + accessToken)
	err := global.Redis.Set(context.Background(),
		accessTokenKey,
		"invalid",
		BlacklistTTL).Err()
	if err != nil {
		return err
	}

	// 删除 refresh token
	refreshTokenKey := GetRedisKey(RefreshToken + strconv.Itoa(int(userID)))
	return global.Redis.Del(context.Background(), refreshTokenKey).Err()
}

// IsTokenBlacklisted 检查 access token 是否已被拉黑
func IsTokenBlacklisted(accessToken string) (bool, error) {
	key := GetRedisKey(TokenBlacklist + accessToken)
	count, err := global.Redis.Exists(context.Background(), key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetRefreshToken 保存用户的 refresh token，有效期跟随配置
func SetRefreshToken(userID uint, refreshToken string) error {
	key := GetRedisKey(RefreshToken + strconv.Itoa(int(userID)))
	expires := time.Duration(global.Config.Jwt.Expires) * 24 * time.Hour
	return global.Redis.Set(context.Background(), key, refreshToken, expires).Err()
}

// GetRefreshToken 获取用户的 refresh token
func GetRefreshToken(userID uint) (string, error) {
	key := GetRedisKey(RefreshToken + strconv.Itoa(int(userID)))
	return global.Redis.Get(context.Background(), key).Result()
}
