package application

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"bedrock-chat/backend/internal/features/chat/domain"
	"bedrock-chat/backend/internal/metrics"
)

// Chat modes, used as log field and metric label.
const (
	ModeDirect  = "direct"
	ModeWithDoc = "with_doc"
)

// ChatService defines the interface for the chat application service.
type ChatService interface {
	// Chat sends the message to the model as is.
	Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)
	// ChatWithDoc grounds the message in the knowledge document before sending it.
	ChatWithDoc(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)
}

// chatService is the implementation of ChatService.
type chatService struct {
	builder  PromptBuilder
	invoker  ModelInvoker
	document domain.KnowledgeDocument
}

// NewChatService creates a new instance of chatService. document is read-only
// for the lifetime of the service.
func NewChatService(builder PromptBuilder, invoker ModelInvoker, document domain.KnowledgeDocument) ChatService {
	return &chatService{
		builder:  builder,
		invoker:  invoker,
		document: document,
	}
}

func (s *chatService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	return s.reply(ctx, ModeDirect, s.builder.Build(req.Message, nil))
}

func (s *chatService) ChatWithDoc(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	content := s.document.Content
	return s.reply(ctx, ModeWithDoc, s.builder.Build(req.Message, &content))
}

func (s *chatService) reply(ctx context.Context, mode, prompt string) (*domain.ChatResponse, error) {
	metrics.ChatRequestsTotal.WithLabelValues(mode).Inc()
	log.WithFields(log.Fields{
		"mode":         mode,
		"prompt_chars": len(prompt),
	}).Debug("Handling chat request")

	text, err := s.invoker.Invoke(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s reply: %w", mode, err)
	}
	return &domain.ChatResponse{Reply: text}, nil
}
