package review

import (
	"errors"

	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ReviewCreateRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Comments  string `json:"comments" validate:"required,min=1,max=5000"`
}

// ReviewCreate 审稿人提交审稿意见
func (r *Review) ReviewCreate(c *gin.Context) {
	var req ReviewCreateRequest
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

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	if _, err := models.ArticleGet(req.ArticleID); err != nil {
		res.Error(c, res.ArticleNotFound, "稿件不存在")
		return
	}

	err = models.ReviewCreate(&models.ReviewModel{
		ArticleID:  req.ArticleID,
		ReviewerID: claims.UserID,
		Comments:   req.Comments,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmptyComments) || errors.Is(err, models.ErrCommentsTooLong) {
			res.Error(c, res.InvalidParameter, err.Error())
			return
		}
		global.Log.Error("models.ReviewCreate() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "提交审稿意见失败")
		return
	}
	global.Log.Info("审稿意见提交成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
