package infrastructure

import (
	"context"
)

// ModelClient is the raw invoke capability of a model provider.
// It sends a serialized request body to the model identified by modelID and
// returns the serialized response body. Any error is a transport failure.
type ModelClient interface {
	InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error)
}

// ModelClientFunc adapts a plain function to ModelClient.
type ModelClientFunc func(ctx context.Context, modelID string, body []byte) ([]byte, error)

// InvokeModel calls f.
func (f ModelClientFunc) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	return f(ctx, modelID, body)
}
