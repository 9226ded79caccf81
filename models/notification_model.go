package models

import (
	"errors"
	"fmt"

	"journal/global"
	"journal/models/ctypes"

	"gorm.io/gorm"
)

var ErrNotRecipient = errors.New("只有接收人可以标记已读")

// NotificationModel 通知模型
// 通知只增不删，除 is_read 外创建后不再变更
type NotificationModel struct {
	MODEL         `json:","`
	RecipientID   uint            `json:"recipient_id" gorm:"not null;index;comment:接收人id"`
	RecipientRole ctypes.UserRole `json:"recipient_role" gorm:"type:varchar(20);index;comment:接收角色"`
	Title         string          `json:"title" gorm:"type:varchar(100);not null;comment:标题"`
	Message       string          `json:"message" gorm:"type:text;not null;comment:内容"`
	ArticleID     string          `json:"article_id" gorm:"type:varchar(32);index;comment:关联稿件id"`
	IsRead        bool            `json:"is_read" gorm:"not null;default:false;index;comment:是否已读"`
}

// Create 创建通知
func (n *NotificationModel) Create() error {
	if err := global.DB.Create(n).Error; err != nil {
		return fmt.Errorf("创建通知失败: %w", err)
	}
	return nil
}

// NotificationListByUser 用户通知列表，含按角色广播的通知
func NotificationListByUser(userID uint, role ctypes.UserRole, page PageInfo) ([]NotificationModel, int64, error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 20
	}

	query := global.DB.Model(&NotificationModel{}).
		Where("recipient_id = ? OR (recipient_id = 0 AND recipient_role = ?)", userID, role)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计通知数量失败: %w", err)
	}

	var notifications []NotificationModel
	err := query.Order("created_at DESC").
		Offset((page.Page - 1) * page.PageSize).
		Limit(page.PageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询通知列表失败: %w", err)
	}
	return notifications, total, nil
}

// NotificationUnreadCount 未读通知数量
func NotificationUnreadCount(userID uint, role ctypes.UserRole) (int64, error) {
	var count int64
	err := global.DB.Model(&NotificationModel{}).
		Where("is_read = false AND (recipient_id = ? OR (recipient_id = 0 AND recipient_role = ?))", userID, role).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计未读通知失败: %w", err)
	}
	return count, nil
}

// MarkRead 标记通知已读，只允许接收人操作
func NotificationMarkRead(id uint, userID uint, role ctypes.UserRole) error {
	var notification NotificationModel
	err := global.DB.Take(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("通知不存在: %w", err)
		}
		return fmt.Errorf("获取通知失败: %w", err)
	}

	if notification.RecipientID != 0 && notification.RecipientID != userID {
		return ErrNotRecipient
	}
	if notification.RecipientID == 0 && notification.RecipientRole != role {
		return ErrNotRecipient
	}

	return global.DB.Model(&notification).Update("is_read", true).Error
}
