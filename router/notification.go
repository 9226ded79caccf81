package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) NotificationRouter() {
	notificationApi := api.AppGroupApp.NotificationApi
	notificationRouter := router.Group("notification")
	notificationRouter.GET("list", middleware.JwtAuth(), notificationApi.NotificationList)
	notificationRouter.PUT(":id/read", middleware.JwtAuth(), notificationApi.NotificationRead)
}
