package story

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Story is the server-owned content record addressed by slug or UUID. The
// nested field map is kept intact; nothing is flattened on the way in.
type Story struct {
	ID          int64      `json:"id,omitempty"`
	UUID        uuid.UUID  `json:"uuid"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	FullSlug    string     `json:"full_slug,omitempty"`
	Content     Block      `json:"content"`
	IsStartpage bool       `json:"is_startpage,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Block is one embedded page-body element: a component type tag plus a flat
// field map. Field values are scalars, asset references, or nested block
// lists; the tolerant accessors below never panic on absent or mistyped
// fields.
type Block map[string]any

// Component returns the block's component type tag.
func (b Block) Component() string {
	return b.String("component")
}

// UID returns the block's editor-assigned identity, empty when absent.
func (b Block) UID() string {
	return b.String("_uid")
}

// String returns the named field as a trimmed string, empty when the field is
// absent or not a string.
func (b Block) String(key string) string {
	if b == nil {
		return ""
	}
	if value, ok := b[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// Bool returns the named field as a boolean, false when absent or mistyped.
func (b Block) Bool(key string) bool {
	if b == nil {
		return false
	}
	value, _ := b[key].(bool)
	return value
}

// Int returns the named field as an int. JSON numbers decode as float64, so
// both representations are accepted.
func (b Block) Int(key string) int {
	if b == nil {
		return 0
	}
	switch value := b[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

// Blocks returns the named field as a list of nested blocks. Entries that are
// not objects are skipped.
func (b Block) Blocks(key string) []Block {
	if b == nil {
		return nil
	}
	raw, ok := b[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Block, 0, len(raw))
	for _, entry := range raw {
		switch typed := entry.(type) {
		case map[string]any:
			out = append(out, Block(typed))
		case Block:
			out = append(out, typed)
		}
	}
	return out
}

// Strings returns the named field as a list of non-empty strings. UUID link
// lists arrive in this shape.
func (b Block) Strings(key string) []string {
	if b == nil {
		return nil
	}
	raw, ok := b[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if value, ok := entry.(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// Field returns the raw field value, nil when absent.
func (b Block) Field(key string) any {
	if b == nil {
		return nil
	}
	return b[key]
}

// Has reports whether the field is present at all.
func (b Block) Has(key string) bool {
	if b == nil {
		return false
	}
	_, ok := b[key]
	return ok
}

// storyEnvelope mirrors the single-story response shape of the content store.
type storyEnvelope struct {
	Story *Story `json:"story"`
}

// storiesEnvelope mirrors the multi-story response shape of the content store.
type storiesEnvelope struct {
	Stories []*Story `json:"stories"`
}
