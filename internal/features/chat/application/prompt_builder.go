package application

import (
	"strings"

	"bedrock-chat/backend/internal/features/chat/domain"
)

// SystemInstruction is the first segment of the context-mode prompt.
const SystemInstruction = "You are a helpful assistant. Use the provided context to answer the user, " +
	"but do not mention that you are using a document."

// ContextTemplate is the fixed template used in context-augmented mode.
var ContextTemplate = domain.PromptTemplate{
	{Role: domain.RoleSystem, Text: SystemInstruction},
	{Role: domain.RoleSystem, Text: "Context:\n{context}"},
	{Role: domain.RoleUser, Text: "{question}"},
}

var roleLabels = map[domain.Role]string{
	domain.RoleSystem: "System",
	domain.RoleUser:   "Human",
}

// PromptBuilder turns a user question, and optionally a context text, into a flat prompt.
type PromptBuilder interface {
	// Build returns question unchanged when context is nil, otherwise the
	// rendered context template.
	Build(question string, context *string) string
}

type promptBuilder struct {
	template domain.PromptTemplate
}

// NewPromptBuilder creates a PromptBuilder over ContextTemplate.
func NewPromptBuilder() PromptBuilder {
	return &promptBuilder{template: ContextTemplate}
}

func (b *promptBuilder) Build(question string, context *string) string {
	if context == nil {
		return question
	}

	// Values are substituted in a single pass, so placeholder-like text inside
	// the context or question is left alone.
	r := strings.NewReplacer("{context}", *context, "{question}", question)

	lines := make([]string, 0, len(b.template))
	for _, seg := range b.template {
		lines = append(lines, roleLabels[seg.Role]+": "+r.Replace(seg.Text))
	}
	return strings.Join(lines, "\n")
}
