package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) WorkflowRouter() {
	workflowApi := api.AppGroupApp.WorkflowApi
	articleRouter := router.Group("article")
	// 角色校验交给工作流转移表，这里只要求登录
	articleRouter.POST(":id/workflow", middleware.JwtAuth(), workflowApi.WorkflowApply)
}
