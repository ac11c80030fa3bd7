package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	}
}

func TestHeuristicDerivesDraftFromFilename(t *testing.T) {
	h := &Heuristic{Now: fixedClock()}
	draft, err := h.Extract(context.Background(), File{Name: "Acme-NDA-2024.pdf", Bytes: []byte("%PDF")})
	require.NoError(t, err)

	assert.Equal(t, "Acme-NDA-2024", draft.Title)
	assert.Equal(t, "Acme Inc.", draft.Counterparty)
	assert.Equal(t, "2024-03-10", draft.EffectiveDate)
	assert.Equal(t, "2026-03-10", draft.ExpiryDate)
	assert.Equal(t, defaultLimitations, draft.Limitations)
	assert.Equal(t, defaultObligations, draft.Obligations)
	assert.Equal(t, defaultConfidentialityPeriod, draft.ConfidentialityPeriod)
	assert.Empty(t, draft.Notes)
}

func TestHeuristicExtensionHandling(t *testing.T) {
	h := &Heuristic{Now: fixedClock()}
	cases := []struct {
		name  string
		title string
	}{
		{"Beta-MSA.PDF", "Beta-MSA"},
		{"Beta-MSA.docx", "Beta-MSA"},
		{"Beta-MSA.pdf.docx", "Beta-MSA.pdf"},
		{"no-extension", "no-extension"},
		{".pdf", ".pdf"},
	}
	for _, tc := range cases {
		draft, err := h.Extract(context.Background(), File{Name: tc.name, Bytes: []byte("x")})
		require.NoError(t, err)
		assert.Equal(t, tc.title, draft.Title, "file %q", tc.name)
	}
}

func TestHeuristicCounterparty(t *testing.T) {
	h := &Heuristic{Now: fixedClock()}

	draft, err := h.Extract(context.Background(), File{Name: "Gamma.pdf", Bytes: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "Gamma Inc.", draft.Counterparty, "a name without dashes is its own token")

	custom := &Heuristic{Now: fixedClock(), OrgSuffix: "GmbH"}
	draft, err = custom.Extract(context.Background(), File{Name: "Sigma-NDA.pdf", Bytes: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "Sigma GmbH", draft.Counterparty)
}

func TestHeuristicNormalizesTitle(t *testing.T) {
	h := &Heuristic{Now: fixedClock()}
	// "é" as combining sequence (U+0065 U+0301) should come out precomposed.
	draft, err := h.Extract(context.Background(), File{Name: "Café-NDA.pdf", Bytes: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "Café-NDA", draft.Title)
}

func TestHeuristicUnreadableFile(t *testing.T) {
	h := &Heuristic{Now: fixedClock()}
	_, err := h.Extract(context.Background(), File{})
	assert.True(t, errors.Is(err, contracts.ErrExtraction))

	// Content with no name is still readable; the draft is just weak.
	draft, err := h.Extract(context.Background(), File{Bytes: []byte("scan data")})
	require.NoError(t, err)
	assert.Empty(t, draft.Title)
	assert.Empty(t, draft.Counterparty)
	assert.Equal(t, defaultLimitations, draft.Limitations)
}

func TestHeuristicHonorsCancellation(t *testing.T) {
	h := &Heuristic{Now: fixedClock(), Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Extract(ctx, File{Name: "slow.pdf", Bytes: []byte("x")})
	assert.True(t, errors.Is(err, context.Canceled))
}
