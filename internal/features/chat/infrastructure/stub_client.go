package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// stubClient is a deterministic, no-network ModelClient for local runs and CI.
// It echoes the last user message back as a chat completion.
type stubClient struct {
	now func() time.Time
}

// NewStubClient creates a ModelClient that never leaves the process.
func NewStubClient() ModelClient {
	return &stubClient{now: time.Now}
}

func (c *stubClient) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("stub: invalid request body: %w", err)
	}

	var message string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == openai.ChatMessageRoleUser {
			message = req.Messages[i].Content
			break
		}
	}

	resp := openai.ChatCompletionResponse{
		ID:      "stub-completion",
		Object:  "chat.completion",
		Created: c.now().Unix(),
		Model:   modelID,
		Choices: []openai.ChatCompletionChoice{{
			Index: 0,
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: fmt.Sprintf(`You said: "%s"`, message),
			},
			FinishReason: openai.FinishReasonStop,
		}},
	}
	return json.Marshal(resp)
}
