package corn_ser

import (
	"fmt"
	"time"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"

	"go.uber.org/zap"
)

// RemindStaleSubmissions 给编辑部提醒长期未处理的投稿
// 超过配置天数仍停留在 submitted 的稿件按角色广播一条通知
func RemindStaleSubmissions() {
	staleDays := global.Config.Workflow.StaleDays
	if staleDays <= 0 {
		staleDays = 7
	}
	reminderRole := ctypes.UserRole(global.Config.Workflow.ReminderRole)
	if !reminderRole.Valid() {
		reminderRole = ctypes.RoleEditorInChief
	}

	deadline := time.Now().AddDate(0, 0, -staleDays)

	var articles []models.ArticleModel
	err := global.DB.Model(&models.ArticleModel{}).
		Where("status = ? AND updated_at < ?", ctypes.StatusSubmitted, deadline).
		Find(&articles).Error
	if err != nil {
		global.Log.Error("查询积压投稿失败", zap.String("error", err.Error()))
		return
	}

	for _, article := range articles {
		notification := models.NotificationModel{
			RecipientID:   0,
			RecipientRole: reminderRole,
			Title:         "投稿积压提醒",
			Message:       fmt.Sprintf("稿件《%s》已投稿超过%d天未处理", article.Title, staleDays),
			ArticleID:     article.ID,
		}
		if err := notification.Create(); err != nil {
			global.Log.Error("创建积压提醒通知失败",
				zap.String("article_id", article.ID),
				zap.String("error", err.Error()),
			)
		}
	}

	if len(articles) > 0 {
		global.Log.Info("积压投稿提醒完成", zap.Int("count", len(articles)))
	}
}
