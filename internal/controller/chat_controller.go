package controller

import (
	"strconv"

	"github.com/PriyanshVijay26/quiz-master/internal/service"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController 用户之间的定向消息
type ChatController struct {
	ChatService *service.ChatService
	Hub         *service.ChatHub
}

func NewChatController(chatService *service.ChatService, hub *service.ChatHub) *ChatController {
	return &ChatController{
		ChatService: chatService,
		Hub:         hub,
	}
}

// SendMessage godoc
// @Summary 发送消息
// @Tags 消息
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SendMessageInput true "消息内容"
// @Success 201 {object} util.Response{data=model.ChatMessage}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "接收方不存在"
// @Router /api/messages [post]
func (ctrl *ChatController) SendMessage(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.SendMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	msg, err := ctrl.ChatService.Send(c.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(c, "Failed to send message", err)
		return
	}
	util.Created(c, "Message sent successfully", msg)
}

// ListMessages godoc
// @Summary 消息记录
// @Description 指定 with 时返回双方之间的消息，否则返回自己收发的全部消息
// @Tags 消息
// @Produce  json
// @Security ApiKeyAuth
// @Param   with query int false "对方用户ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/messages [get]
func (ctrl *ChatController) ListMessages(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var with uint
	if v, err := strconv.ParseUint(c.Query("with"), 10, 64); err == nil {
		with = uint(v)
	}

	msgs, err := ctrl.ChatService.List(claims.UserID, with)
	if err != nil {
		util.HandleError(c, "Failed to fetch messages", err)
		return
	}
	util.Success(c, msgs)
}

// HandleWS godoc
// @Summary WebSocket 连接
// @Description 建立 WebSocket 连接以接收新消息推送
// @Tags 消息
// @Security ApiKeyAuth
// @Param   token query string false "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Router /api/messages/ws [get]
func (ctrl *ChatController) HandleWS(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	service.ServeWs(ctrl.Hub, c.Writer, c.Request, claims.UserID)
}
