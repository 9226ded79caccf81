package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) ArticleRouter() {
	articleApi := api.AppGroupApp.ArticleApi
	articleRouter := router.Group("article")
	articleRouter.GET("search", articleApi.ArticleSearch)
	articleRouter.GET("list", middleware.JwtAuth(), articleApi.ArticleList)
	articleRouter.GET("mine", middleware.JwtAuth(), articleApi.ArticleMine)
	articleRouter.GET(":id", articleApi.ArticleDetail)
	articleRouter.POST("", middleware.JwtAuth(), articleApi.ArticleCreate)
	articleRouter.PUT("", middleware.JwtAuth(), articleApi.ArticleUpdate)
	articleRouter.POST("delete", middleware.JwtAdmin(), articleApi.ArticleDelete)
}
