package data

import (
	"journal/global"
	"journal/models"
	"journal/models/res"

	"github.com/gin-gonic/gin"
)

// VisitorDistribution 访问者分布数据结构
type VisitorDistribution struct {
	Name  string `json:"name"`  // 地区名称
	Value int64  `json:"value"` // 访问者数量
}

// GetVisitorDistribution 获取门户访问者地理分布数据
func (d *Data) GetVisitorDistribution(c *gin.Context) {
	query := global.DB.Model(&models.VisitModel{})

	var result []VisitorDistribution
	err := query.Select("distribution as name, COUNT(DISTINCT visitor_id) as value").
		Where("distribution != ''").
		Group("distribution").
		Find(&result).Error

	if err != nil {
		res.Error(c, res.ServerError, "获取访问者分布数据失败")
		return
	}

	res.Success(c, result)
}
