package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"bedrock-chat/backend/internal/features/chat/application"
	"bedrock-chat/backend/internal/features/chat/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ChatHandler holds the chat service.
type ChatHandler struct {
	chatService application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService application.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Templates parses the embedded chat UI templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// SendMessageHandler handles a chat message in direct mode.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	h.handle(c, application.ModeDirect, h.chatService.Chat)
}

// SendMessageWithDocHandler handles a chat message grounded in the knowledge document.
func (h *ChatHandler) SendMessageWithDocHandler(c *gin.Context) {
	h.handle(c, application.ModeWithDoc, h.chatService.ChatWithDoc)
}

// ChatUIHandler serves the browser chat UI.
func (h *ChatHandler) ChatUIHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", nil)
}

type chatFunc func(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)

func (h *ChatHandler) handle(c *gin.Context, mode string, chat chatFunc) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := chat(c.Request.Context(), &req)
	if err != nil {
		var transportErr *domain.TransportError
		if errors.As(err, &transportErr) {
			log.WithError(err).WithField("mode", mode).Error("Chat request failed at the model provider")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach the model provider"})
			return
		}
		log.WithError(err).WithField("mode", mode).Error("Chat request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
