package store

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

// encodeRecords serializes the full collection as a JSON array, preserving
// order. This is the persisted schema: field names follow the Record JSON
// tags exactly.
func encodeRecords(records []contracts.Record) ([]byte, error) {
	if records == nil {
		records = []contracts.Record{}
	}
	return json.Marshal(records)
}

// decodeRecords parses a persisted blob. Callers treat a non-nil error as
// "corrupt prior data" and fall back to an empty collection; it is never
// fatal. Unknown fields inside records are ignored.
func decodeRecords(data []byte) ([]contracts.Record, error) {
	var records []contracts.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// snapshotHash identifies a serialized collection, used to skip writes that
// would persist identical bytes.
func snapshotHash(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}
