package api

import (
	"journal/api/article"
	"journal/api/attachment"
	"journal/api/chat"
	"journal/api/data"
	"journal/api/issue"
	"journal/api/log"
	"journal/api/notification"
	"journal/api/partner"
	"journal/api/review"
	"journal/api/system"
	"journal/api/user"
	"journal/api/visit"
	"journal/api/workflow"
)

type AppGroup struct {
	SystemApi       system.System
	UserApi         user.User
	ArticleApi      article.Article
	WorkflowApi     workflow.Workflow
	NotificationApi notification.Notification
	ReviewApi       review.Review
	IssueApi        issue.Issue
	PartnerApi      partner.Partner
	AttachmentApi   attachment.Attachment
	DataApi         data.Data
	VisitApi        visit.Visit
	LogApi          log.Log
	ChatApi         chat.Chat
}

var AppGroupApp = new(AppGroup)
