package cohort_test

import (
	"testing"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

func TestNewGroupValid(t *testing.T) {
	t.Parallel()

	g, err := domain.NewGroup("4821", "MOD1", "Module 1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if g.ExternalID != "4821" || g.Name != "MOD1" || g.Description != "Module 1" {
		t.Fatalf("unexpected group: %+v", g)
	}
	if g.DescriptionFormat != domain.DescriptionFormatHTML {
		t.Fatalf("unexpected description format: %d", g.DescriptionFormat)
	}
}

func TestNewGroupEmptyExternalID(t *testing.T) {
	t.Parallel()

	_, err := domain.NewGroup("  ", "MOD1", "Module 1")
	if err != domain.ErrInvalidGroupExternalID {
		t.Fatalf("expected ErrInvalidGroupExternalID, got %v", err)
	}
}

func TestGroupRelabelLastWins(t *testing.T) {
	t.Parallel()

	g := domain.Group{ID: 3, ExternalID: "4821", Name: "OLD", Description: "old"}
	g.Relabel("MOD1", "first")
	g.Relabel("MOD1-B", "second")

	if g.Name != "MOD1-B" || g.Description != "second" {
		t.Fatalf("unexpected labels: %q %q", g.Name, g.Description)
	}
	if g.ID != 3 || g.ExternalID != "4821" {
		t.Fatalf("identity must not change: %+v", g)
	}
}
