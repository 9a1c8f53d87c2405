package application

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
	openai "github.com/sashabaranov/go-openai"

	"bedrock-chat/backend/internal/features/chat/domain"
	"bedrock-chat/backend/internal/features/chat/infrastructure"
	configdomain "bedrock-chat/backend/internal/features/config/domain"
	"bedrock-chat/backend/internal/metrics"
)

// reasoningPattern matches a reasoning segment with its delimiters, across lines.
var reasoningPattern = regexp.MustCompile(`(?is)<reasoning>.*?</reasoning>`)

// Reasons a response degrades to the fallback reply.
const (
	AnomalyDecode          = "decode_error"
	AnomalyNoChoices       = "no_choices"
	AnomalyMissingContent  = "missing_content"
	AnomalyContentNotText  = "content_not_string"
	AnomalyEmptyAfterStrip = "empty_after_strip"
)

// ModelInvoker sends a finished prompt to the hosted model and returns its normalized reply.
type ModelInvoker interface {
	// Invoke returns a *domain.TransportError if the provider call fails.
	// Malformed responses never fail; they yield domain.FallbackReply.
	Invoke(ctx context.Context, prompt string) (string, error)
}

// invocationPayload is the chat-completions body sent to the model.
// The generation parameters are always serialized.
type invocationPayload struct {
	Messages    []openai.ChatCompletionMessage `json:"messages"`
	MaxTokens   int                            `json:"max_tokens"`
	Temperature float32                        `json:"temperature"`
	TopP        float32                        `json:"top_p"`
}

type modelInvoker struct {
	client infrastructure.ModelClient
	config configdomain.ModelConfig
}

// NewModelInvoker creates a ModelInvoker over client using config for every call.
func NewModelInvoker(client infrastructure.ModelClient, config configdomain.ModelConfig) ModelInvoker {
	return &modelInvoker{client: client, config: config}
}

func (m *modelInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(invocationPayload{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   m.config.MaxTokens,
		Temperature: m.config.Temperature,
		TopP:        m.config.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal invocation payload: %w", err)
	}

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := m.client.InvokeModel(ctx, m.config.ModelID, body)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		observe(metrics.OutcomeTransportError, elapsed)
		log.WithError(err).WithField("model_id", m.config.ModelID).Error("Model invocation failed")
		return "", &domain.TransportError{ModelID: m.config.ModelID, Err: err}
	}

	reply, anomaly := ExtractReply(raw)
	if anomaly != "" {
		observe(metrics.OutcomeFallback, elapsed)
		metrics.FallbackReasonsTotal.WithLabelValues(anomaly).Inc()
		log.WithFields(log.Fields{
			"model_id": m.config.ModelID,
			"reason":   anomaly,
			"bytes":    len(raw),
		}).Warn("Unexpected model response, using fallback reply")
		return domain.FallbackReply, nil
	}

	observe(metrics.OutcomeReply, elapsed)
	return reply, nil
}

func observe(outcome string, seconds float64) {
	metrics.InvocationsTotal.WithLabelValues(outcome).Inc()
	metrics.InvocationDurationSeconds.WithLabelValues(outcome).Observe(seconds)
}

// completionEnvelope is the part of a chat-completions body the reply comes from.
// Other fields are never decoded, so their types do not matter.
type completionEnvelope struct {
	Choices []json.RawMessage `json:"choices"`
}

type completionChoice struct {
	Message json.RawMessage `json:"message"`
}

type completionMessage struct {
	Content json.RawMessage `json:"content"`
}

// ExtractReply pulls the reply text out of a chat-completions response body.
// Only choices[0].message.content is read. It returns domain.FallbackReply
// and a non-empty anomaly reason when that is not usable text.
func ExtractReply(raw []byte) (string, string) {
	var env completionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.FallbackReply, AnomalyDecode
	}
	if len(env.Choices) == 0 {
		return domain.FallbackReply, AnomalyNoChoices
	}

	var choice completionChoice
	if err := json.Unmarshal(env.Choices[0], &choice); err != nil {
		return domain.FallbackReply, AnomalyDecode
	}
	if isAbsent(choice.Message) {
		return domain.FallbackReply, AnomalyMissingContent
	}

	var msg completionMessage
	if err := json.Unmarshal(choice.Message, &msg); err != nil {
		return domain.FallbackReply, AnomalyDecode
	}
	if isAbsent(msg.Content) {
		return domain.FallbackReply, AnomalyMissingContent
	}

	var content any
	if err := json.Unmarshal(msg.Content, &content); err != nil {
		return domain.FallbackReply, AnomalyDecode
	}
	text, ok := content.(string)
	if !ok {
		return domain.FallbackReply, AnomalyContentNotText
	}

	reply := StripReasoning(text)
	if reply == "" {
		return domain.FallbackReply, AnomalyEmptyAfterStrip
	}
	return reply, ""
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// StripReasoning removes every <reasoning>...</reasoning> segment, matched
// case-insensitively, and trims surrounding whitespace.
func StripReasoning(content string) string {
	return strings.TrimSpace(reasoningPattern.ReplaceAllString(content, ""))
}
