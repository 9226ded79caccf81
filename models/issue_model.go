package models

import (
	"fmt"

	"journal/global"

	"gorm.io/gorm"
)

// IssueModel 刊期模型
type IssueModel struct {
	MODEL  `json:","`
	Title  string `json:"title"`
	Volume int    `json:"volume"` // 卷
	Number int    `json:"number"` // 期
	Year   int    `json:"year"`
}

// Create 创建刊期
func (i *IssueModel) Create() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(i).Error; err != nil {
			return fmt.Errorf("创建刊期失败: %w", err)
		}
		return nil
	})
}

// Delete 删除刊期
func (i *IssueModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(i).Error; err != nil {
			return fmt.Errorf("删除刊期失败: %w", err)
		}
		return nil
	})
}
