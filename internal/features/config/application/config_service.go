package application

import (
	"bedrock-chat/backend/internal/features/config/domain"
)

// ConfigService defines the interface for reading the running configuration.
type ConfigService interface {
	ModelConfigView() *domain.ModelConfigView
}

// configService is the implementation of ConfigService.
type configService struct {
	view domain.ModelConfigView
}

// NewConfigService creates a new instance of configService. The view is
// computed once; neither input changes after startup.
func NewConfigService(model domain.ModelConfig, knowledgeDocLoaded bool) ConfigService {
	return &configService{
		view: domain.ModelConfigView{
			ModelID:  model.ModelID,
			Region:   model.Region,
			Provider: model.Provider,
			ModelParams: domain.ModelParams{
				Temperature: model.Temperature,
				MaxTokens:   model.MaxTokens,
				TopP:        model.TopP,
			},
			TimeoutSeconds: model.Timeout.Seconds(),
			KnowledgeDoc:   knowledgeDocLoaded,
		},
	}
}

// ModelConfigView returns a copy of the public model configuration.
func (s *configService) ModelConfigView() *domain.ModelConfigView {
	view := s.view
	return &view
}
