package infrastructure

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const jsonContentType = "application/json"

// bedrockRuntimeAPI is the slice of the Bedrock runtime client used here.
type bedrockRuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// bedrockClient is the AWS Bedrock runtime implementation of ModelClient.
type bedrockClient struct {
	runtime bedrockRuntimeAPI
}

// NewBedrockClient creates a Bedrock runtime client for region using the
// default AWS credential chain (env, shared config, instance role).
func NewBedrockClient(ctx context.Context, region string) (ModelClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for region %s: %w", region, err)
	}
	return &bedrockClient{runtime: bedrockruntime.NewFromConfig(awsCfg)}, nil
}

// InvokeModel sends body to the model and returns the raw response body.
func (c *bedrockClient) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	log.WithFields(log.Fields{
		"model_id": modelID,
		"bytes":    len(body),
	}).Debug("Invoking Bedrock model")

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(jsonContentType),
		Accept:      aws.String(jsonContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock InvokeModel: %w", err)
	}
	return out.Body, nil
}
