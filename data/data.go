// Package data carries the knowledge document compiled into the binary.
package data

import _ "embed"

// EmbeddedKnowledgeName identifies the compiled-in document in logs and config views.
const EmbeddedKnowledgeName = "embedded:knowledge.txt"

//go:embed knowledge.txt
var Knowledge string
