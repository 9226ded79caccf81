package router

import (
	"journal/api"
	"journal/middleware"
)

func (routerGroupApp *RouterGroup) ChatRouter() {
	chatApi := api.AppGroupApp.ChatApi
	routerGroupApp.GET("/ws", middleware.WSAuth(), chatApi.HandleWebSocket)
}
