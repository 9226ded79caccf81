package models

import (
	"fmt"

	"journal/global"

	"gorm.io/gorm"
)

// PartnerModel 合作期刊友情链接
type PartnerModel struct {
	MODEL `json:","`
	Name  string `json:"name"`
	Link  string `json:"link"`
}

// Create 创建友链
func (p *PartnerModel) Create() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("创建友链失败: %w", err)
		}
		return nil
	})
}

// Delete 删除友链
func (p *PartnerModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(p).Error; err != nil {
			return fmt.Errorf("删除友链失败: %w", err)
		}
		return nil
	})
}
