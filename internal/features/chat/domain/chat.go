package domain

import "fmt"

// FallbackReply is returned whenever the model response cannot be turned into a reply.
const FallbackReply = "Sorry, I could not generate a response."

// MissingDocumentText stands in for the knowledge document when it cannot be read.
const MissingDocumentText = "No additional project documentation is available."

// ChatRequest is the body of both chat endpoints.
type ChatRequest struct {
	// Message must be non-empty; whitespace-only text is passed through.
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the final text shown to the user.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// KnowledgeDocument is the static context injected in context-augmented mode.
type KnowledgeDocument struct {
	Path    string
	Content string
	// Fallback is true when Content is MissingDocumentText because Path could not be read.
	Fallback bool
}

// Role tags a prompt template segment.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Segment is one role-tagged piece of a PromptTemplate.
// Text may reference the {context} and {question} placeholders.
type Segment struct {
	Role Role
	Text string
}

// PromptTemplate is an ordered list of segments rendered in context mode.
type PromptTemplate []Segment

// TransportError means the call to the model provider itself failed.
type TransportError struct {
	ModelID string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model %s invocation failed: %v", e.ModelID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
