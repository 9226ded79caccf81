package router

import (
	"net/http"

	"journal/core"
	"journal/global"
	"journal/middleware"

	"github.com/gin-gonic/gin"
)

type RouterGroup struct {
	*gin.RouterGroup
}

func InitRouter() *gin.Engine {
	//设置gin模式
	gin.SetMode(global.Config.System.Env)
	router := gin.New()
	router.Use(core.GinMiddleware(), core.GinRecovery())
	router.Use(middleware.VisitRecorder())
	//稿件附件的静态目录
	router.StaticFS("uploads", http.Dir("uploads"))
	//创建路由组
	apiRouterGroup := router.Group("api")
	routerGroupApp := RouterGroup{apiRouterGroup}
	routerGroupApp.SystemRouter()
	routerGroupApp.UserRouter()
	routerGroupApp.ArticleRouter()
	routerGroupApp.WorkflowRouter()
	routerGroupApp.NotificationRouter()
	routerGroupApp.ReviewRouter()
	routerGroupApp.IssueRouter()
	routerGroupApp.PartnerRouter()
	routerGroupApp.AttachmentRouter()
	routerGroupApp.DataRouter()
	routerGroupApp.VisitRouter()
	routerGroupApp.LogRouter()
	routerGroupApp.ChatRouter()
	return router
}
