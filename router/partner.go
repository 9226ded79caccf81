package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) PartnerRouter() {
	partnerApi := api.AppGroupApp.PartnerApi
	partnerRouter := router.Group("partner")
	partnerRouter.GET("list", partnerApi.PartnerList)
	partnerRouter.POST("", middleware.JwtAdmin(), partnerApi.PartnerCreate)
	partnerRouter.DELETE(":id", middleware.JwtAdmin(), partnerApi.PartnerDelete)
}
