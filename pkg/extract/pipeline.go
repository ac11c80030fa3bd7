package extract

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pactwatch/pactwatch/pkg/contracts"
)

// Result is the outcome of one extraction request. Err is ErrExtraction for
// an unreadable file and context.Canceled when a newer request superseded
// this one before the backend finished.
type Result struct {
	File  File
	Draft contracts.Draft
	Err   error

	gen uint64
}

// Pipeline runs extractions through a backend with a single in-flight slot.
// Starting a new extraction cancels the pending one; a superseded result is
// discarded and never delivered, even if the backend returns it later
// (stale-result guard via a generation counter).
//
// Completed results arrive on Results in start order of the requests that
// produced them; the consumer applies them from its own event loop.
type Pipeline struct {
	backend Extractor
	log     *slog.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	results chan Result
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger used for discarded-result notices.
func WithPipelineLogger(log *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline wraps the backend. The results channel is buffered so a
// completing extraction never blocks on a slow consumer slot.
func NewPipeline(backend Extractor, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		backend: backend,
		log:     slog.Default(),
		results: make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Results delivers completed, still-current extraction outcomes.
func (p *Pipeline) Results() <-chan Result {
	return p.results
}

// Start begins extracting file, superseding any pending extraction. The
// superseded request is cancelled and its eventual result discarded.
func (p *Pipeline) Start(ctx context.Context, file File) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	// A completed-but-unconsumed result from the superseded request is
	// stale as of now; drop it before it can be pumped.
	select {
	case <-p.results:
	default:
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		draft, err := p.backend.Extract(runCtx, file)
		cancel()
		p.deliver(Result{File: file, Draft: draft, Err: err, gen: gen})
	}()
}

// Stale reports whether a newer request has superseded res since it was
// delivered. Consumers that buffer results outside the pipeline check this
// before applying one.
func (p *Pipeline) Stale(res Result) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return res.gen != p.gen
}

// Cancel aborts the pending extraction, if any.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	// Bump the generation so an already-completed result still in flight is
	// treated as stale, and drop one already queued.
	p.gen++
	select {
	case <-p.results:
	default:
	}
}

// deliver applies the stale-result guard and publishes current results.
// The generation check and the send happen under one lock so a stale result
// can never land after the one that superseded it. The channel holds one
// slot and is drained before the send, so the send cannot block.
func (p *Pipeline) deliver(res Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != res.gen {
		p.log.Debug("extraction result discarded, superseded by newer request",
			slog.String("file", res.File.Name))
		return
	}
	p.cancel = nil
	select {
	case <-p.results:
	default:
	}
	p.results <- res
}
