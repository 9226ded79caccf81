package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) ReviewRouter() {
	reviewApi := api.AppGroupApp.ReviewApi
	reviewRouter := router.Group("review")
	reviewRouter.POST("", middleware.JwtEditorial(), reviewApi.ReviewCreate)
	reviewRouter.GET(":article_id", middleware.JwtAuth(), reviewApi.ReviewList)
}
