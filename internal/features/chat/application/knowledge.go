package application

import (
	"os"
	"strings"

	"github.com/apex/log"

	"bedrock-chat/backend/data"
	"bedrock-chat/backend/internal/features/chat/domain"
)

// LoadKnowledgeDocument reads the knowledge document once. An empty path
// selects the document compiled into the binary, so the default does not
// depend on the working directory. A missing or unreadable file is not
// fatal: the document content becomes domain.MissingDocumentText.
func LoadKnowledgeDocument(path string) domain.KnowledgeDocument {
	if path == "" {
		return embeddedDocument(data.Knowledge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Knowledge document unavailable, using placeholder")
		return placeholderDocument(path)
	}

	log.WithFields(log.Fields{
		"path":  path,
		"bytes": len(content),
	}).Info("Loaded knowledge document")
	return domain.KnowledgeDocument{Path: path, Content: string(content)}
}

func embeddedDocument(content string) domain.KnowledgeDocument {
	if strings.TrimSpace(content) == "" {
		log.WithField("path", data.EmbeddedKnowledgeName).Warn("Embedded knowledge document is empty, using placeholder")
		return placeholderDocument(data.EmbeddedKnowledgeName)
	}

	log.WithFields(log.Fields{
		"path":  data.EmbeddedKnowledgeName,
		"bytes": len(content),
	}).Info("Loaded knowledge document")
	return domain.KnowledgeDocument{Path: data.EmbeddedKnowledgeName, Content: content}
}

func placeholderDocument(path string) domain.KnowledgeDocument {
	return domain.KnowledgeDocument{
		Path:     path,
		Content:  domain.MissingDocumentText,
		Fallback: true,
	}
}
