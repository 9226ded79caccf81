package data

import (
	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/search_ser"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Statistics struct {
	TotalUsers     int64                          `json:"total_users"`
	TotalPublished int64                          `json:"total_published"`
	TotalViews     int64                          `json:"total_views"`
	StatusCounts   map[ctypes.ArticleStatus]int64 `json:"status_counts"`
}

// GetStatistics 后台统计数据：用户数、各状态稿件数、发表稿件浏览量
func (d *Data) GetStatistics(c *gin.Context) {
	totalUsers, err := models.GetTotalUsers()
	if err != nil {
		global.Log.Error("models.GetTotalUsers() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "获取用户总数失败")
		return
	}

	statusCounts, err := models.ArticleCountByStatus()
	if err != nil {
		global.Log.Error("models.ArticleCountByStatus() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "获取稿件统计数据失败")
		return
	}

	publishedStats, err := search_ser.NewArticleIndexService().GetPublishedStats()
	if err != nil {
		global.Log.Error("search_ser.GetPublishedStats() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "获取发表统计数据失败")
		return
	}

	statistics := &Statistics{
		TotalUsers:     totalUsers,
		TotalPublished: publishedStats.TotalArticles,
		TotalViews:     publishedStats.TotalViews,
		StatusCounts:   statusCounts,
	}
	global.Log.Info("获取统计数据成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, statistics)
}
