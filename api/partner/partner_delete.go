package partner

import (
	"journal/global"
	"journal/models"
	"journal/models/res"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PartnerDelete 删除合作期刊链接
func (p *Partner) PartnerDelete(c *gin.Context) {
	var req models.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := (&models.PartnerModel{
		MODEL: models.MODEL{
			ID: req.ID,
		},
	}).Delete()
	if err != nil {
		global.Log.Error("partner.Delete() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "删除失败")
		return
	}
	global.Log.Info("合作期刊删除成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
