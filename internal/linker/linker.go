// Package linker matches locally authored gallery card stubs to fully
// authored wedding records by normalized name comparison. The same matching
// runs at render time and inside the provisioning command that persists
// links, so the two call sites can never drift apart.
package linker

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Candidate is one record a stub may link to.
type Candidate struct {
	UUID uuid.UUID
	Slug string
	Name string
}

// Stub is one card awaiting a link, identified by its editor-assigned ID.
type Stub struct {
	ID   string
	Name string
}

// NormalizeName lowers the name, spells out ampersands, collapses every
// non-alphanumeric run to a single hyphen, and trims leading and trailing
// hyphens. Stub names and candidate names pass through the identical
// transform before comparison.
func NormalizeName(name string) string {
	lowered := strings.ToLower(name)
	lowered = strings.ReplaceAll(lowered, "&", "and")
	collapsed := nonAlphanumeric.ReplaceAllString(lowered, "-")
	return strings.Trim(collapsed, "-")
}

// Match finds the best candidate for a single display name. Tiers are tried
// in order and the first hit wins: exact raw slug match, exact normalized
// name match, then substring containment in either direction. A false return
// means the stub stays unlinked, which is an expected outcome rather than an
// error.
func Match(name string, candidates []Candidate) (uuid.UUID, bool) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return uuid.Nil, false
	}

	for _, candidate := range candidates {
		if candidate.Slug == normalized {
			return candidate.UUID, true
		}
	}

	for _, candidate := range candidates {
		if NormalizeName(candidate.Name) == normalized {
			return candidate.UUID, true
		}
	}

	for _, candidate := range candidates {
		candidateName := NormalizeName(candidate.Name)
		if candidateName == "" {
			continue
		}
		if strings.Contains(normalized, candidateName) || strings.Contains(candidateName, normalized) {
			return candidate.UUID, true
		}
	}

	return uuid.Nil, false
}

// Link matches every stub independently and returns the full mapping. Every
// stub ID appears in the result; uuid.Nil marks an unlinked stub. The
// operation is deterministic and idempotent: the same inputs always produce
// the same mapping.
func Link(stubs []Stub, candidates []Candidate) map[string]uuid.UUID {
	links := make(map[string]uuid.UUID, len(stubs))
	for _, stub := range stubs {
		matched, ok := Match(stub.Name, candidates)
		if !ok {
			links[stub.ID] = uuid.Nil
			continue
		}
		links[stub.ID] = matched
	}
	return links
}
