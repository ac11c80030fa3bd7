// Package session coordinates which record is being drafted or edited,
// mediating between extraction output, user edits, and store commits.
package session

import (
	"context"
	"log/slog"

	"github.com/pactwatch/pactwatch/pkg/contracts"
	"github.com/pactwatch/pactwatch/pkg/extract"
	"github.com/pactwatch/pactwatch/pkg/store"
)

// State is the edit session's base state. An in-flight extraction overlays
// the base state rather than replacing it; see Extracting.
type State int

const (
	// Idle means no draft and no selection.
	Idle State = iota
	// Drafting means a new, unsaved record is being composed.
	Drafting
	// Editing means an existing record is loaded for edit.
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drafting:
		return "drafting"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Session is a single-user edit session. It is driven by one event loop and
// is not safe for concurrent use: the loop calls operations directly and
// pumps Pipeline results into Apply.
type Session struct {
	store    *store.Store
	pipeline *extract.Pipeline
	log      *slog.Logger

	state      State
	editingID  string
	draft      contracts.Draft
	extracting bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates an idle session over the given store and pipeline. The
// pipeline may be nil for sessions that never handle file drops.
func New(st *store.Store, pipeline *extract.Pipeline, opts ...Option) *Session {
	s := &Session{
		store:    st,
		pipeline: pipeline,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the base state.
func (s *Session) State() State { return s.state }

// Extracting reports whether an extraction is outstanding.
func (s *Session) Extracting() bool { return s.extracting }

// EditingID returns the id loaded for edit, or "" outside Editing.
func (s *Session) EditingID() string { return s.editingID }

// Draft returns the current working draft.
func (s *Session) Draft() contracts.Draft { return s.draft }

// SetDraft replaces the working draft with user edits. A non-empty draft
// without a selected record implicitly moves Idle to Drafting; emptying the
// draft by hand moves Drafting back to Idle.
func (s *Session) SetDraft(d contracts.Draft) {
	s.draft = d
	if s.state == Editing {
		return
	}
	if d.IsZero() {
		s.state = Idle
	} else {
		s.state = Drafting
	}
}

// Select loads a persisted record into the working draft for editing,
// discarding whatever was in progress.
func (s *Session) Select(id string) error {
	record, err := s.store.Get(id)
	if err != nil {
		return err
	}
	s.state = Editing
	s.editingID = id
	s.draft = record.Draft()
	return nil
}

// Cancel discards in-progress edits and returns to Idle.
func (s *Session) Cancel() {
	s.reset()
}

// CanCommit reports whether Commit would act. The commit affordance in any
// presentation layer is conditioned on this.
func (s *Session) CanCommit() bool {
	if s.state != Drafting && s.state != Editing {
		return false
	}
	return s.draft.Validate() == nil
}

// Commit turns the working draft into a persisted record: create when
// Drafting, update when Editing. An unreachable or uncommittable state is a
// silent no-op reported by committed=false. On success the session returns
// to Idle with a cleared draft; a persistence failure still counts as a
// commit because the in-memory collection took the mutation.
func (s *Session) Commit(ctx context.Context) (record contracts.Record, committed bool, err error) {
	if !s.CanCommit() {
		return contracts.Record{}, false, nil
	}
	switch s.state {
	case Drafting:
		record, err = s.store.Create(ctx, s.draft)
	case Editing:
		record, err = s.store.Update(ctx, s.editingID, s.draft)
	}
	if err != nil && record.ID == "" {
		return contracts.Record{}, false, err
	}
	s.reset()
	return record, true, err
}

// Delete removes a record from the store. Deleting the record currently
// loaded for edit forces the session back to Idle with the draft cleared,
// regardless of unsaved edits.
func (s *Session) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	if s.state == Editing && s.editingID == id {
		s.reset()
	}
	return err
}

// DropFile starts extracting the file, superseding any pending extraction.
// The base state is untouched; completion arrives through Apply.
func (s *Session) DropFile(ctx context.Context, file extract.File) {
	s.extracting = true
	s.pipeline.Start(ctx, file)
}

// Apply consumes one pipeline result. A stale or superseded result is
// dropped. A successful extraction replaces the working draft wholesale,
// losing prior user edits, and the base state stays whatever it was before
// the drop (a drop while Idle lands in Drafting). An extraction failure
// leaves the draft exactly as it was.
func (s *Session) Apply(res extract.Result) {
	if s.pipeline.Stale(res) {
		return
	}
	s.extracting = false
	if res.Err != nil {
		s.log.Warn("extraction failed, draft unchanged",
			slog.String("file", res.File.Name), slog.Any("error", res.Err))
		return
	}
	s.draft = res.Draft
	if s.state == Idle && !s.draft.IsZero() {
		s.state = Drafting
	}
}

func (s *Session) reset() {
	if s.extracting && s.pipeline != nil {
		s.pipeline.Cancel()
	}
	s.state = Idle
	s.editingID = ""
	s.draft = contracts.Draft{}
	s.extracting = false
}
