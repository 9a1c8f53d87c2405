package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	input *bedrockruntime.InvokeModelInput
	out   *bedrockruntime.InvokeModelOutput
	err   error
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	return f.out, f.err
}

func TestBedrockClient_InvokeModel(t *testing.T) {
	runtime := &fakeRuntime{out: &bedrockruntime.InvokeModelOutput{Body: []byte(`{"choices":[]}`)}}
	client := &bedrockClient{runtime: runtime}

	out, err := client.InvokeModel(context.Background(), "openai.gpt-oss-20b-1:0", []byte(`{"messages":[]}`))
	require.NoError(t, err)

	assert.Equal(t, `{"choices":[]}`, string(out))
	assert.Equal(t, "openai.gpt-oss-20b-1:0", aws.ToString(runtime.input.ModelId))
	assert.Equal(t, "application/json", aws.ToString(runtime.input.ContentType))
	assert.Equal(t, "application/json", aws.ToString(runtime.input.Accept))
	assert.Equal(t, `{"messages":[]}`, string(runtime.input.Body))
}

func TestBedrockClient_InvokeModelError(t *testing.T) {
	cause := errors.New("ThrottlingException")
	client := &bedrockClient{runtime: &fakeRuntime{err: cause}}

	out, err := client.InvokeModel(context.Background(), "m", []byte(`{}`))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, cause)
}

func TestStubClient_EchoesLastUserMessage(t *testing.T) {
	client := &stubClient{now: func() time.Time { return time.Unix(1700000000, 0) }}

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: "m",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "first"},
			{Role: openai.ChatMessageRoleUser, Content: "hello"},
		},
	})
	require.NoError(t, err)

	out, err := client.InvokeModel(context.Background(), "m", body)
	require.NoError(t, err)

	var resp openai.ChatCompletionResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, `You said: "hello"`, resp.Choices[0].Message.Content)
	assert.Equal(t, int64(1700000000), resp.Created)
	assert.Equal(t, "m", resp.Model)
}

func TestStubClient_RejectsInvalidBody(t *testing.T) {
	_, err := NewStubClient().InvokeModel(context.Background(), "m", []byte("not json"))
	assert.Error(t, err)
}

func TestStubClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStubClient().InvokeModel(ctx, "m", []byte(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModelClientFunc(t *testing.T) {
	var gotModel string
	var client ModelClient = ModelClientFunc(func(ctx context.Context, modelID string, body []byte) ([]byte, error) {
		gotModel = modelID
		return body, nil
	})

	out, err := client.InvokeModel(context.Background(), "m", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))
	assert.Equal(t, "m", gotModel)
}
