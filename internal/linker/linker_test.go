package linker

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

var (
	emilyUUID  = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	joshuaUUID = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	matteaUUID = uuid.MustParse("33333333-3333-4333-8333-333333333333")
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Emily & Barron Nixon", "emily-and-barron-nixon"},
		{"Mattea Courtney", "mattea-courtney"},
		{"  Joshua -- Teri!  ", "joshua-teri"},
		{"A&B", "aandb"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchExactSlugTier(t *testing.T) {
	candidates := []Candidate{
		{UUID: joshuaUUID, Slug: "joshua-and-teri", Name: "Joshua and Teri"},
		{UUID: emilyUUID, Slug: "emily-and-barron-nixon", Name: "Emily and Barron Nixon"},
	}

	matched, ok := Match("Emily & Barron Nixon", candidates)
	if !ok || matched != emilyUUID {
		t.Fatalf("expected tier-1 slug match to emily, got %v ok=%v", matched, ok)
	}
}

func TestMatchSlugTierBeatsSubstring(t *testing.T) {
	// A candidate that would satisfy substring containment is listed first;
	// the exact slug match later in the list must still win.
	candidates := []Candidate{
		{UUID: matteaUUID, Slug: "mattea", Name: "Emily and Barron Nixon Photo Gallery"},
		{UUID: emilyUUID, Slug: "emily-and-barron-nixon", Name: "Emily and Barron"},
	}

	matched, ok := Match("Emily & Barron Nixon", candidates)
	if !ok || matched != emilyUUID {
		t.Fatalf("expected exact slug tier to win over substring, got %v ok=%v", matched, ok)
	}
}

func TestMatchSubstringTier(t *testing.T) {
	candidates := []Candidate{
		{UUID: joshuaUUID, Slug: "joshua-and-teri", Name: "Joshua and Teri"},
		{UUID: matteaUUID, Slug: "weddings-mattea", Name: "Mattea Courtney Photo Gallery"},
	}

	matched, ok := Match("Mattea Courtney", candidates)
	if !ok || matched != matteaUUID {
		t.Fatalf("expected tier-3 substring match, got %v ok=%v", matched, ok)
	}
}

func TestMatchNoCandidate(t *testing.T) {
	candidates := []Candidate{
		{UUID: joshuaUUID, Slug: "joshua-and-teri", Name: "Joshua and Teri"},
	}

	if matched, ok := Match("Completely Unrelated", candidates); ok || matched != uuid.Nil {
		t.Fatalf("expected no match, got %v ok=%v", matched, ok)
	}
	if _, ok := Match("", candidates); ok {
		t.Fatalf("empty names must never match")
	}
}

func TestLinkDeterministicAndIdempotent(t *testing.T) {
	stubs := []Stub{
		{ID: "stub-1", Name: "Emily & Barron Nixon"},
		{ID: "stub-2", Name: "Mattea Courtney"},
		{ID: "stub-3", Name: "No Such Couple"},
	}
	candidates := []Candidate{
		{UUID: emilyUUID, Slug: "emily-and-barron-nixon", Name: "Emily and Barron Nixon"},
		{UUID: matteaUUID, Slug: "weddings-mattea", Name: "Mattea Courtney Photo Gallery"},
	}

	first := Link(stubs, candidates)
	second := Link(stubs, candidates)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Link not idempotent: %#v vs %#v", first, second)
	}

	want := map[string]uuid.UUID{
		"stub-1": emilyUUID,
		"stub-2": matteaUUID,
		"stub-3": uuid.Nil,
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("Link mapping mismatch: got %#v, want %#v", first, want)
	}
}
