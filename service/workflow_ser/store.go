package workflow_ser

import (
	"journal/models"
	"journal/models/ctypes"
)

// GormArticleStore 基于数据库的稿件存取实现
type GormArticleStore struct{}

func (GormArticleStore) Get(id string) (*models.ArticleModel, error) {
	return models.ArticleGet(id)
}

func (GormArticleStore) UpdateStatus(id string, version int64, to ctypes.ArticleStatus, extra map[string]interface{}) error {
	return models.StatusUpdate(id, version, to, extra)
}

// DBNotificationEmitter 落库的通知实现
type DBNotificationEmitter struct{}

func (DBNotificationEmitter) Notify(recipientID uint, recipientRole ctypes.UserRole, title, message, articleID string) error {
	notification := models.NotificationModel{
		RecipientID:   recipientID,
		RecipientRole: recipientRole,
		Title:         title,
		Message:       message,
		ArticleID:     articleID,
	}
	return notification.Create()
}
