package chat

import (
	"net/http"
	"sync"
	"time"

	"journal/global"
	"journal/models"
	"journal/service/chat_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 编辑部聊天室单例
var (
	chatRoom *chat_ser.ChatRoom
	roomOnce sync.Once
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 在生产环境中应该限制来源
	},
	HandshakeTimeout: 10 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
}

// HandleWebSocket 编辑部成员进入聊天室
func (c *Chat) HandleWebSocket(ctx *gin.Context) {
	roomOnce.Do(func() {
		chatRoom = chat_ser.NewChatRoom()
		go chatRoom.Run()
	})

	_claims, exists := ctx.Get("claims")
	if !exists {
		global.Log.Error("无法获取用户身份信息")
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims := _claims.(*utils.CustomClaims)

	// 升级HTTP连接为WebSocket连接
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		global.Log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	user, err := models.GetUserByID(claims.UserID)
	if err != nil {
		global.Log.Error("获取用户信息失败", zap.Error(err))
		conn.Close()
		return
	}

	id, err := utils.GenerateID()
	if err != nil {
		global.Log.Error("生成ID失败", zap.Error(err))
		conn.Close()
		return
	}

	client := &models.Client{
		ID:       uint64(id),
		UserID:   uint64(user.ID),
		Username: user.FullName,
		Conn:     conn,
		Send:     make(chan *models.ChatMessage, 256),
		Room:     chatRoom,
		JoinedAt: time.Now(),
	}

	joinMsg := &models.ChatMessage{
		Type:      models.MessageTypeJoin,
		UserID:    client.UserID,
		Username:  client.Username,
		Content:   "加入了编辑部聊天室",
		CreatedAt: time.Now(),
	}

	chatRoom.Register <- client
	chatRoom.Broadcast <- joinMsg

	go client.WritePump()
	go c.handleMessages(client)
}

// handleMessages 处理客户端发来的消息
func (c *Chat) handleMessages(client *models.Client) {
	defer func() {
		if r := recover(); r != nil {
			global.Log.Error("处理消息时发生panic", zap.Any("error", r))
		}

		leaveMsg := &models.ChatMessage{
			Type:      models.MessageTypeLeave,
			UserID:    client.UserID,
			Username:  client.Username,
			Content:   "离开了编辑部聊天室",
			CreatedAt: time.Now(),
		}
		chatRoom.Broadcast <- leaveMsg

		chatRoom.Unregister <- client
		client.Conn.Close()
	}()

	for {
		var message models.ChatMessage
		err := client.Conn.ReadJSON(&message)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				global.Log.Error("websocket unexpected close", zap.Error(err))
			}
			break
		}

		switch message.Type {
		case models.MessageTypeMessage:
			message.UserID = client.UserID
			message.Username = client.Username
			message.CreatedAt = time.Now()

			chatRoom.Broadcast <- &message

		case models.MessageTypeReceipt:
			if message.MessageID > 0 {
				if err := chatRoom.UpdateMessageStatus(message.MessageID, message.Status); err != nil {
					global.Log.Error("更新消息状态失败", zap.Error(err))
				}

				// 通知消息发送者
				if msg, err := chatRoom.GetMessageByID(message.MessageID); err == nil {
					receiptMsg := &models.ChatMessage{
						Type:      models.MessageTypeReceipt,
						MessageID: message.MessageID,
						Status:    message.Status,
						UserID:    client.UserID,
					}

					if targetClient := chatRoom.GetClient(msg.UserID); targetClient != nil {
						targetClient.Send <- receiptMsg
					}
				}
			}

		case models.MessageTypeHistory:
			limit := 50
			if message.Limit > 0 && message.Limit <= 100 {
				limit = message.Limit
			}

			history, err := chatRoom.GetMessageHistory(limit)
			if err != nil {
				global.Log.Error("获取历史消息失败", zap.Error(err))
				client.Send <- &models.ChatMessage{
					Type:    models.MessageTypeError,
					Content: "获取历史消息失败",
				}
				continue
			}

			client.Send <- &models.ChatMessage{
				Type:     models.MessageTypeHistory,
				Messages: history,
			}

		case models.MessageTypeUsers:
			client.Send <- &models.ChatMessage{
				Type:  models.MessageTypeUsers,
				Users: chatRoom.GetOnlineUsers(),
			}
		}
	}
}
