package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) IssueRouter() {
	issueApi := api.AppGroupApp.IssueApi
	issueRouter := router.Group("issue")
	issueRouter.GET("list", issueApi.IssueList)
	issueRouter.POST("", middleware.JwtEditorial(), issueApi.IssueCreate)
	issueRouter.DELETE(":id", middleware.JwtAdmin(), issueApi.IssueDelete)
}
