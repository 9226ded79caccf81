package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) AttachmentRouter() {
	attachmentApi := api.AppGroupApp.AttachmentApi
	attachmentRouter := router.Group("attachment")
	attachmentRouter.POST("", middleware.JwtAuth(), attachmentApi.AttachmentUpload)
	attachmentRouter.GET("list", middleware.JwtAuth(), attachmentApi.AttachmentList)
	attachmentRouter.DELETE(":id", middleware.JwtAdmin(), attachmentApi.AttachmentDelete)
}
