package elements

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// MaxDepth bounds tree traversal. Persisted structures deeper than this are
// treated as corrupt rather than walked indefinitely.
const MaxDepth = 64

// ErrTreeTooDeep indicates a persisted element structure exceeded MaxDepth,
// which only happens when the stored payload is corrupt.
var ErrTreeTooDeep = errors.New("elements: tree exceeds maximum depth")

// Node is one element in a buildable content tree: a typed widget carrying
// its own settings and an ordered list of children.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings,omitempty"`
	Children Nodes          `json:"elements,omitempty"`
}

// Nodes is an ordered element list; the root of a content tree is a Nodes
// value, not a single node.
type Nodes []*Node

// VisitFunc receives each node during a walk together with its depth
// (0 for root-level nodes). Returning an error aborts the walk.
type VisitFunc func(node *Node, depth int) error

// Walk traverses the tree pre-order, which matches the CSS cascade: rules for
// children are emitted after their ancestors.
func (nodes Nodes) Walk(visit VisitFunc) error {
	return walk(nodes, 0, visit)
}

func walk(nodes Nodes, depth int, visit VisitFunc) error {
	if depth >= MaxDepth {
		return ErrTreeTooDeep
	}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := visit(node, depth); err != nil {
			return err
		}
		if err := walk(node.Children, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

// Clone deep-copies the tree. Snapshots hold clones so later edits to the
// canonical tree never leak into history.
func (nodes Nodes) Clone() Nodes {
	if nodes == nil {
		return nil
	}
	out := make(Nodes, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Clone())
	}
	return out
}

// Clone deep-copies a single node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	copied := &Node{
		ID:       n.ID,
		Type:     n.Type,
		Settings: CloneSettings(n.Settings),
		Children: n.Children.Clone(),
	}
	return copied
}

// CloneSettings deep-copies a settings map, including nested maps and slices
// produced by JSON decoding.
func CloneSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	out := make(map[string]any, len(settings))
	for key, value := range settings {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneSettings(typed)
	case []any:
		copied := make([]any, len(typed))
		for i, item := range typed {
			copied[i] = cloneValue(item)
		}
		return copied
	default:
		return value
	}
}

// MergeSettings layers element settings over control defaults. The inputs are
// not mutated.
func MergeSettings(defaults, settings map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(settings))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range settings {
		merged[key] = value
	}
	return merged
}

// Count returns the number of nodes in the tree.
func (nodes Nodes) Count() int {
	total := 0
	_ = nodes.Walk(func(*Node, int) error {
		total++
		return nil
	})
	return total
}

// RegenerateIDs assigns fresh element ids across the whole tree. Imports use
// this so elements from an exported document never collide with existing ones.
func (nodes Nodes) RegenerateIDs(generate func() string) error {
	if generate == nil {
		generate = NewID
	}
	return nodes.Walk(func(node *Node, _ int) error {
		node.ID = generate()
		return nil
	})
}

// NewID produces a short, collision-resistant element identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Fingerprint derives a stable content hash over an element tree plus
// content-level settings. Two payloads with equal trees and settings always
// produce the same value; encoding/json sorts map keys so the digest is
// canonical.
func Fingerprint(nodes Nodes, settings map[string]any) string {
	// Absent and empty settings fingerprint identically, so callers that
	// normalize nil maps do not defeat no-op detection.
	if settings == nil {
		settings = map[string]any{}
	}
	payload := struct {
		Elements Nodes          `json:"elements"`
		Settings map[string]any `json:"settings"`
	}{
		Elements: nodes,
		Settings: settings,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		// Settings maps come from JSON columns; non-encodable values cannot
		// occur outside programmer error.
		return ""
	}
	digest := sha256.Sum256(encoded)
	return hex.EncodeToString(digest[:])
}
