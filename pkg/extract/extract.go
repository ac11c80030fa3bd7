// Package extract turns an uploaded document into a pre-filled draft record.
//
// The Extractor interface is the swap point for a real OCR/NLP backend; the
// bundled Heuristic backend only mines the file name. Pipeline adds the
// single-flight concurrency contract: at most one extraction is in flight,
// and a newer request supersedes and discards an older one.
package extract

import (
	"context"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

// File is the raw uploaded document: a name plus opaque content bytes.
type File struct {
	Name  string
	Bytes []byte
}

// Extractor produces a best-effort draft from a file. No draft field is
// required to be non-empty; unrecognized content falls back to weak
// heuristics rather than erroring. Only a file that cannot be read at all
// fails, with ErrExtraction. Implementations honor ctx cancellation.
type Extractor interface {
	Extract(ctx context.Context, file File) (contracts.Draft, error)
}
