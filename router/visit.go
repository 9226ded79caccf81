package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) VisitRouter() {
	visitApi := api.AppGroupApp.VisitApi
	visitRouter := router.Group("visit")
	visitRouter.GET("list", middleware.JwtAdmin(), visitApi.VisitList)
	visitRouter.DELETE(":id", middleware.JwtAdmin(), visitApi.VisitDelete)
}
