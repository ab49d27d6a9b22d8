package doogie

import (
	"go.uber.org/zap"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/node"
)

// ParseDocument parses CommonMark text into a document root that owns its
// tree. The caller must Close it.
func ParseDocument(text string) *node.Node {
	return node.ParseDocument(text)
}

// ParseDocumentWithOptions is ParseDocument with parse options.
func ParseDocumentWithOptions(text string, opts node.Options) *node.Node {
	return node.ParseDocumentWithOptions(text, opts)
}

// NewNode creates a detached node of kind t with every capability.
func NewNode(t node.Type) (*node.Node, error) {
	return node.New(t)
}

// SetLogger installs l as the logger of the engine and the node layer.
// This must be called before any documents are parsed.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	cmark.SetLogger(l.Named("cmark"))
	node.SetLogger(l.Named("node"))
}
