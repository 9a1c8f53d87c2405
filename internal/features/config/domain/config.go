package domain

import "time"

// ModelConfig holds everything the model invoker needs to reach the hosted model.
// It is resolved once at startup and never mutated afterwards.
type ModelConfig struct {
	ModelID     string        `json:"model_id"`
	Region      string        `json:"region"`
	Provider    string        `json:"provider"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
	Timeout     time.Duration `json:"-"`
}

// ModelParams is the generation parameter subset exposed to clients.
type ModelParams struct {
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float32 `json:"top_p"`
}

// ModelConfigView is the public, read-only view of the running model configuration.
type ModelConfigView struct {
	ModelID        string      `json:"model_id"`
	Region         string      `json:"region"`
	Provider       string      `json:"provider"`
	ModelParams    ModelParams `json:"model_params"`
	TimeoutSeconds float64     `json:"timeout_seconds"`
	KnowledgeDoc   bool        `json:"knowledge_doc_loaded"`
}
