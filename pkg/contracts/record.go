// Package contracts defines the contract record data model shared by the
// store, the expiry engine, the extraction pipeline, and the edit session.
package contracts

import (
	"strings"
	"time"
)

// Record is a tracked confidentiality/contract document.
//
// ID and DateAdded are assigned once at creation and never change, including
// through updates. Every other field is replaced wholesale on update.
// EffectiveDate and ExpiryDate are kept as ISO 8601 date strings (YYYY-MM-DD)
// rather than time.Time: the system tolerates inconsistent or empty date
// input and only interprets ExpiryDate when computing alerts.
type Record struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	EffectiveDate         string    `json:"effectiveDate"`
	ExpiryDate            string    `json:"expiryDate"`
	Counterparty          string    `json:"counterparty"`
	Limitations           string    `json:"limitations"`
	Obligations           string    `json:"obligations"`
	ConfidentialityPeriod string    `json:"confidentialityPeriod"`
	Notes                 string    `json:"notes"`
	DateAdded             time.Time `json:"dateAdded"`
}

// Draft is an uncommitted set of contract fields with no identity yet.
// Drafts live inside an edit session and are never persisted directly.
type Draft struct {
	Title                 string `json:"title"`
	EffectiveDate         string `json:"effectiveDate"`
	ExpiryDate            string `json:"expiryDate"`
	Counterparty          string `json:"counterparty"`
	Limitations           string `json:"limitations"`
	Obligations           string `json:"obligations"`
	ConfidentialityPeriod string `json:"confidentialityPeriod"`
	Notes                 string `json:"notes"`
}

// Validate reports whether the draft is committable. A whitespace-only title
// is treated the same as an empty one.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return validationf("title must not be empty")
	}
	return nil
}

// IsZero reports whether every field of the draft is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Apply returns a copy of r with all mutable fields replaced by the draft's.
// ID and DateAdded are preserved.
func (r Record) Apply(d Draft) Record {
	return Record{
		ID:                    r.ID,
		Title:                 d.Title,
		EffectiveDate:         d.EffectiveDate,
		ExpiryDate:            d.ExpiryDate,
		Counterparty:          d.Counterparty,
		Limitations:           d.Limitations,
		Obligations:           d.Obligations,
		ConfidentialityPeriod: d.ConfidentialityPeriod,
		Notes:                 d.Notes,
		DateAdded:             r.DateAdded,
	}
}

// Draft returns the record's mutable fields as a draft, for loading an
// existing record into an edit session.
func (r Record) Draft() Draft {
	return Draft{
		Title:                 r.Title,
		EffectiveDate:         r.EffectiveDate,
		ExpiryDate:            r.ExpiryDate,
		Counterparty:          r.Counterparty,
		Limitations:           r.Limitations,
		Obligations:           r.Obligations,
		ConfidentialityPeriod: r.ConfidentialityPeriod,
		Notes:                 r.Notes,
	}
}
