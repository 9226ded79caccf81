package issue

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type IssueCreateRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=100"`
	Volume int    `json:"volume" validate:"required,gt=0"`
	Number int    `json:"number" validate:"required,gt=0"`
	Year   int    `json:"year" validate:"required,gte=1900"`
}

// IssueCreate 创建刊期
func (i *Issue) IssueCreate(c *gin.Context) {
	var req IssueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		global.Log.Error("c.ShouldBindJSON() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	err = (&models.IssueModel{
		Title:  req.Title,
		Volume: req.Volume,
		Number: req.Number,
		Year:   req.Year,
	}).Create()
	if err != nil {
		global.Log.Error("issue.Create() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "创建刊期失败")
		return
	}
	global.Log.Info("刊期创建成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
