package corn_ser

import (
	"context"
	"strings"
	"time"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/service/redis_ser"
	"journal/service/search_ser"

	"go.uber.org/zap"
)

// SyncArticleStats 把Redis中的浏览量统计同步回数据库和搜索索引
func SyncArticleStats() {
	indexService := search_ser.NewArticleIndexService()

	// 获取所有稿件统计数据的键
	ctx := context.Background()
	pattern := redis_ser.Prefix + redis_ser.ArticlePrefix + ":*"
	iter := global.Redis.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		// 从键中提取稿件ID
		articleID := strings.TrimPrefix(key, redis_ser.Prefix+redis_ser.ArticlePrefix+":")
		// 跳过IP去重等非统计键
		if strings.Contains(articleID, ":") {
			continue
		}

		// 获取Redis中的统计数据
		stats, err := redis_ser.GetArticleStats(articleID)
		if err != nil {
			global.Log.Error("获取Redis稿件统计数据失败",
				zap.String("article_id", articleID),
				zap.String("error", err.Error()),
			)
			continue
		}

		lookCount, exists := stats[redis_ser.FieldLookCount]
		if !exists {
			continue
		}

		// 获取数据库中的稿件
		article, err := models.ArticleGet(articleID)
		if err != nil {
			global.Log.Error("获取稿件失败",
				zap.String("article_id", articleID),
				zap.String("error", err.Error()),
			)
			continue
		}

		if uint(lookCount) == article.LookCount {
			continue
		}

		// 更新数据库中的浏览量
		err = global.DB.Model(&models.ArticleModel{}).
			Where("id = ?", articleID).
			Update("look_count", uint(lookCount)).Error
		if err != nil {
			global.Log.Error("更新稿件浏览量失败",
				zap.String("article_id", articleID),
				zap.String("error", err.Error()),
			)
			continue
		}

		// 已发表稿件同时更新搜索索引
		if article.Status == ctypes.StatusPublished {
			if err := indexService.UpdateLookCount(articleID, uint(lookCount)); err != nil {
				global.Log.Error("更新索引浏览量失败",
					zap.String("article_id", articleID),
					zap.String("error", err.Error()),
				)
			}
		}

		global.Log.Info("同步稿件统计数据成功",
			zap.String("article_id", articleID),
			zap.Any("stats", stats))

		// 避免过快请求
		time.Sleep(time.Millisecond * 100)
	}

	if err := iter.Err(); err != nil {
		global.Log.Error("遍历Redis键失败", zap.String("error", err.Error()))
	}
}
