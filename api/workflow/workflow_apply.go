package workflow

import (
	"errors"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/service/search_ser"
	"journal/service/workflow_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type WorkflowApplyUri struct {
	ID string `uri:"id" validate:"required"`
}

type WorkflowApplyRequest struct {
	Action   ctypes.WorkflowAction `json:"action" validate:"required"`
	ToUserID uint                  `json:"to_user_id"`
	Comments string                `json:"comments" validate:"max=5000"`
}

// WorkflowApply 对稿件执行一次工作流动作
// 发起人身份一律取自JWT，不信任请求体
func (w *Workflow) WorkflowApply(c *gin.Context) {
	var uri WorkflowApplyUri
	if err := c.ShouldBindUri(&uri); err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	var req WorkflowApplyRequest
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

	// send_comments 必须附带意见内容，否则通知和审稿记录都是空的
	if req.Action == ctypes.ActionSendComments && req.Comments == "" {
		res.Error(c, res.InvalidParameter, "审稿意见不能为空")
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	orchestrator := workflow_ser.NewOrchestrator(
		workflow_ser.GormArticleStore{},
		workflow_ser.DBNotificationEmitter{},
		global.Log,
	)

	result, err := orchestrator.ApplyAction(workflow_ser.ApplyRequest{
		ArticleID:     uri.ID,
		Action:        req.Action,
		RequesterID:   claims.UserID,
		RequesterRole: claims.Role,
		ToUserID:      req.ToUserID,
		Comments:      req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrArticleNotFound):
			res.Error(c, res.ArticleNotFound, "稿件不存在")
		case errors.Is(err, workflow_ser.ErrInvalidTransition):
			res.Error(c, res.InvalidTransition, "当前状态不允许该操作")
		case errors.Is(err, models.ErrVersionConflict):
			res.Error(c, res.VersionConflict, "稿件已被他人处理，请刷新后重试")
		case errors.Is(err, workflow_ser.ErrNotArticleAuthor):
			res.Error(c, res.NotArticleAuthor, "只有稿件作者可以执行该操作")
		default:
			global.Log.Error("orchestrator.ApplyAction() failed", zap.String("error", err.Error()))
			res.Error(c, res.ServerError, "工作流执行失败")
		}
		return
	}

	switch req.Action {
	case ctypes.ActionPublish:
		// 发表后进入检索索引
		w.afterPublish(uri.ID)
	case ctypes.ActionSendComments:
		// 编辑意见落一条审稿记录
		w.recordComments(uri.ID, claims.UserID, req.Comments)
	}

	global.Log.Info("工作流动作执行成功",
		zap.String("articleID", uri.ID),
		zap.String("action", string(req.Action)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	res.Success(c, result)
}

// afterPublish 发表后把稿件同步进ES索引和布隆过滤器
func (w *Workflow) afterPublish(articleID string) {
	article, err := models.ArticleGet(articleID)
	if err != nil {
		global.Log.Error("models.ArticleGet() failed", zap.String("error", err.Error()))
		return
	}

	err = search_ser.NewArticleIndexService().IndexArticle(article)
	if err != nil {
		global.Log.Error("search_ser.IndexArticle() failed", zap.String("error", err.Error()))
	}

	err = redis_ser.AddToBloomFilter(articleID)
	if err != nil {
		global.Log.Error("redis_ser.AddToBloomFilter() failed", zap.String("error", err.Error()))
	}
}

// recordComments send_comments 动作附带的意见持久化
func (w *Workflow) recordComments(articleID string, reviewerID uint, comments string) {
	if comments == "" {
		return
	}

	err := models.ReviewCreate(&models.ReviewModel{
		ArticleID:  articleID,
		ReviewerID: reviewerID,
		Comments:   comments,
	})
	if err != nil {
		global.Log.Error("models.ReviewCreate() failed", zap.String("error", err.Error()))
		return
	}

	err = redis_ser.IncrArticleReviewCount(articleID)
	if err != nil {
		global.Log.Error("redis_ser.IncrArticleReviewCount() failed", zap.String("error", err.Error()))
	}
}
