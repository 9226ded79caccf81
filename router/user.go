package router

import (
	"journal/api"
	"journal/middleware"
)

func (router RouterGroup) UserRouter() {
	userApi := api.AppGroupApp.UserApi
	userRouter := router.Group("user")
	userRouter.GET("", middleware.JwtAuth(), userApi.UserInfo)
	userRouter.POST("", userApi.UserCreate)
	userRouter.POST("login", userApi.UserLogin)
	userRouter.GET("orcid/login-url", userApi.GetOrcidLoginURL)
	userRouter.GET("orcid/callback", userApi.OrcidLoginCallback)
	userRouter.POST("logout", middleware.JwtAuth(), userApi.UserLogout)
	userRouter.GET("list", middleware.JwtAdmin(), userApi.UserList)
	userRouter.DELETE(":id", middleware.JwtAdmin(), userApi.UserDelete)
}
