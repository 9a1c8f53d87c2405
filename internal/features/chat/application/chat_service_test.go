package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedrock-chat/backend/data"
	"bedrock-chat/backend/internal/features/chat/domain"
)

// recordingInvoker captures the prompt it was asked to send.
type recordingInvoker struct {
	prompt string
	reply  string
	err    error
}

func (r *recordingInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	r.prompt = prompt
	return r.reply, r.err
}

func TestChat_DirectModeSendsMessageUnchanged(t *testing.T) {
	invoker := &recordingInvoker{reply: "hi!"}
	svc := NewChatService(NewPromptBuilder(), invoker, domain.KnowledgeDocument{Content: "doc"})

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "hi!", resp.Reply)
	assert.Equal(t, "hello", invoker.prompt)
}

func TestChatWithDoc_InjectsDocument(t *testing.T) {
	invoker := &recordingInvoker{reply: "grounded"}
	svc := NewChatService(NewPromptBuilder(), invoker, domain.KnowledgeDocument{Content: "The service listens on 8080."})

	resp, err := svc.ChatWithDoc(context.Background(), &domain.ChatRequest{Message: "Which port?"})

	require.NoError(t, err)
	assert.Equal(t, "grounded", resp.Reply)
	assert.Contains(t, invoker.prompt, SystemInstruction)
	assert.Contains(t, invoker.prompt, "The service listens on 8080.")
	assert.Contains(t, invoker.prompt, "Which port?")
}

func TestChatWithDoc_MissingDocumentUsesPlaceholder(t *testing.T) {
	doc := LoadKnowledgeDocument(filepath.Join(t.TempDir(), "absent.txt"))
	invoker := &recordingInvoker{reply: "ok"}
	svc := NewChatService(NewPromptBuilder(), invoker, doc)

	resp, err := svc.ChatWithDoc(context.Background(), &domain.ChatRequest{Message: "anything?"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Reply)
	assert.Contains(t, invoker.prompt, "No additional project documentation is available.")
}

func TestChat_PropagatesTransportError(t *testing.T) {
	cause := &domain.TransportError{ModelID: "m", Err: errors.New("timeout")}
	svc := NewChatService(NewPromptBuilder(), &recordingInvoker{err: cause}, domain.KnowledgeDocument{})

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{Message: "hello"})

	assert.Nil(t, resp)
	var transportErr *domain.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestLoadKnowledgeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.txt")
	require.NoError(t, os.WriteFile(path, []byte("Project notes."), 0644))

	doc := LoadKnowledgeDocument(path)

	assert.Equal(t, "Project notes.", doc.Content)
	assert.Equal(t, path, doc.Path)
	assert.False(t, doc.Fallback)
}

func TestLoadKnowledgeDocument_Missing(t *testing.T) {
	doc := LoadKnowledgeDocument(filepath.Join(t.TempDir(), "missing.txt"))

	assert.Equal(t, "No additional project documentation is available.", doc.Content)
	assert.True(t, doc.Fallback)
}

func TestLoadKnowledgeDocument_Directory(t *testing.T) {
	doc := LoadKnowledgeDocument(t.TempDir())

	assert.Equal(t, domain.MissingDocumentText, doc.Content)
	assert.True(t, doc.Fallback)
}

func TestLoadKnowledgeDocument_Sources(t *testing.T) {
	onDisk := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(onDisk, []byte("Disk notes."), 0644))

	tests := []struct {
		name         string
		path         string
		wantPath     string
		wantContains string
		wantFallback bool
	}{
		{"default uses embedded document", "", data.EmbeddedKnowledgeName, "Chatbot API project notes", false},
		{"explicit path reads from disk", onDisk, onDisk, "Disk notes.", false},
		{"explicit missing path uses placeholder", filepath.Join(t.TempDir(), "gone.txt"), "", domain.MissingDocumentText, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := LoadKnowledgeDocument(tc.path)

			assert.Contains(t, doc.Content, tc.wantContains)
			assert.Equal(t, tc.wantFallback, doc.Fallback)
			if tc.wantPath != "" {
				assert.Equal(t, tc.wantPath, doc.Path)
			}
		})
	}
}

func TestLoadKnowledgeDocument_DefaultIgnoresWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	doc := LoadKnowledgeDocument("")

	assert.False(t, doc.Fallback)
	assert.Equal(t, data.Knowledge, doc.Content)
}

func TestEmbeddedDocument_EmptyUsesPlaceholder(t *testing.T) {
	doc := embeddedDocument("  \n")

	assert.Equal(t, domain.MissingDocumentText, doc.Content)
	assert.Equal(t, data.EmbeddedKnowledgeName, doc.Path)
	assert.True(t, doc.Fallback)
}
