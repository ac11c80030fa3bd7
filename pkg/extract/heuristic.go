package extract

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

// Boilerplate the placeholder backend fills in for fields it cannot mine
// from a file name.
const (
	defaultLimitations           = "No disclosure to third parties without written consent"
	defaultObligations           = "Return or destroy confidential information upon termination"
	defaultConfidentialityPeriod = "3 years after termination"
)

// Document extensions stripped when deriving a title.
var documentExtensions = []string{".pdf", ".docx", ".doc", ".txt", ".md"}

// Heuristic is the placeholder extraction backend. It derives a draft from
// the file name alone: the title is the name minus a known document
// extension, the counterparty is the token before the first dash suffixed
// with an organizational label, dates span two years from today, and the
// remaining fields get fixed boilerplate.
type Heuristic struct {
	// OrgSuffix is appended to the counterparty token. Defaults to "Inc.".
	OrgSuffix string
	// Delay simulates backend latency before the draft is returned, mainly
	// so tests can exercise cancellation. Zero means immediate.
	Delay time.Duration
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

func (h *Heuristic) Extract(ctx context.Context, file File) (contracts.Draft, error) {
	if file.Name == "" && len(file.Bytes) == 0 {
		return contracts.Draft{}, contracts.Extractionf("file is unreadable: no name and no content")
	}
	if h.Delay > 0 {
		timer := time.NewTimer(h.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return contracts.Draft{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return contracts.Draft{}, err
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	today := now()

	return contracts.Draft{
		Title:                 titleFromName(file.Name),
		EffectiveDate:         today.Format("2006-01-02"),
		ExpiryDate:            today.AddDate(2, 0, 0).Format("2006-01-02"),
		Counterparty:          h.counterparty(file.Name),
		Limitations:           defaultLimitations,
		Obligations:           defaultObligations,
		ConfidentialityPeriod: defaultConfidentialityPeriod,
		Notes:                 "",
	}, nil
}

// titleFromName strips one known document extension and normalizes the rest
// to NFC so titles compare cleanly regardless of how the file system encoded
// the name.
func titleFromName(name string) string {
	for _, ext := range documentExtensions {
		if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	return norm.NFC.String(name)
}

func (h *Heuristic) counterparty(name string) string {
	token, _, _ := strings.Cut(titleFromName(name), "-")
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	suffix := h.OrgSuffix
	if suffix == "" {
		suffix = "Inc."
	}
	return token + " " + suffix
}
