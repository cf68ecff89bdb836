package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"json-modal/log"
)

// State is the render state of an Orchestrator.
type State int

const (
	// StateIdle is the initial state, and the state after rendering missing input.
	StateIdle State = iota
	// StateRendering means a highlight is in flight.
	StateRendering
	// StateRendered means the cached markup is highlighted output.
	StateRendered
	// StateRenderedFallback means the cached markup is escaped text or an error sentinel.
	StateRenderedFallback
	// StateEmpty means the display region was observed empty and a correction is pending.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateRendered:
		return "rendered"
	case StateRenderedFallback:
		return "rendered-fallback"
	case StateEmpty:
		return "empty"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Highlighter produces highlighted markup for JSON text.
type Highlighter interface {
	Highlight(ctx context.Context, code string) (string, error)
}

// Logger is the logging collaborator of an Orchestrator.
type Logger interface {
	Printf(format string, v ...any)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger replaces the default logger (log.InfoLog).
func WithLogger(logger Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithTimeout bounds each highlight call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// Orchestrator turns input values into displayable markup and caches the latest result.
//
// Begin, Commit and the accessors must be called from a single goroutine (the UI loop).
// Job.Run may run anywhere.
type Orchestrator struct {
	highlighter Highlighter
	dialect     Dialect
	logger      Logger
	timeout     time.Duration

	seq       uint64
	markup    string
	state     State
	committed State
}

// New creates an Orchestrator. A nil highlighter is allowed; every render then takes
// the fallback path.
func New(highlighter Highlighter, dialect Dialect, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		highlighter: highlighter,
		dialect:     dialect,
		logger:      log.InfoLog,
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Job is a single render of one input.
type Job struct {
	Seq   uint64
	Input any

	highlighter Highlighter
	dialect     Dialect
	logger      Logger
	timeout     time.Duration
}

// Result is the outcome of a Job.
type Result struct {
	Seq    uint64
	Markup string
	State  State
	// Err is the absorbed failure, if any. It is informational only.
	Err error
}

// Begin starts a render of input. Any earlier job that has not been committed yet is
// superseded.
func (o *Orchestrator) Begin(input any) Job {
	o.seq++
	o.state = StateRendering
	return Job{
		Seq:         o.seq,
		Input:       input,
		highlighter: o.highlighter,
		dialect:     o.dialect,
		logger:      o.logger,
		timeout:     o.timeout,
	}
}

// Commit stores r as the cached markup unless a newer job has begun since r's job.
// It reports whether r was applied.
func (o *Orchestrator) Commit(r Result) bool {
	if r.Seq != o.seq {
		o.logger.Printf("discarding stale render %d (latest %d)", r.Seq, o.seq)
		return false
	}
	o.markup = r.Markup
	o.state = r.State
	o.committed = r.State
	return true
}

// Render runs a job for input to completion and commits it.
func (o *Orchestrator) Render(ctx context.Context, input any) string {
	r := o.Begin(input).Run(ctx)
	o.Commit(r)
	return r.Markup
}

// Markup returns the cached markup of the latest committed render.
func (o *Orchestrator) Markup() string {
	return o.markup
}

// State returns the current render state.
func (o *Orchestrator) State() State {
	return o.state
}

// Dialect returns the markup dialect the orchestrator renders in.
func (o *Orchestrator) Dialect() Dialect {
	return o.dialect
}

// MarkEmpty records that the display region was found empty. The state returns to
// rendered or fallback on the next Commit.
func (o *Orchestrator) MarkEmpty() {
	if o.state == StateRendering {
		return
	}
	o.state = StateEmpty
}

// Settle restores the state of the last commit once the cached markup is back in the
// display region.
func (o *Orchestrator) Settle() {
	if o.state == StateEmpty {
		o.state = o.committed
	}
}

// Seq returns the sequence number of the latest job.
func (o *Orchestrator) Seq() uint64 {
	return o.seq
}

// Run produces markup for the job's input. It never panics and never returns blank
// markup.
func (j Job) Run(ctx context.Context) (r Result) {
	r.Seq = j.Seq

	if IsMissing(j.Input) {
		j.logger.Printf("render %d: %v", j.Seq, ErrMissingInput)
		r.Markup = NoDataMarkup(j.dialect)
		r.State = StateIdle
		r.Err = ErrMissingInput
		return r
	}

	defer func() {
		if p := recover(); p != nil {
			r = j.fallback(fmt.Errorf("%w: panic: %v", ErrHighlight, p))
		}
	}()

	formatted, decodeErr, err := serialize(j.Input)
	if decodeErr != nil {
		j.logger.Printf("render %d: %v; rendering raw text", j.Seq, decodeErr)
	}
	if err != nil {
		return j.fallback(err)
	}

	if j.highlighter == nil {
		return j.fallback(fmt.Errorf("%w: no highlighter", ErrHighlight))
	}

	hctx := ctx
	if j.timeout > 0 {
		var cancel context.CancelFunc
		hctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	markup, err := j.highlighter.Highlight(hctx, formatted)
	if err != nil {
		return j.fallback(fmt.Errorf("%w: %v", ErrHighlight, err))
	}
	if strings.TrimSpace(markup) == "" {
		return j.fallback(fmt.Errorf("%w: empty output", ErrHighlight))
	}

	j.logger.Printf("render %d: highlighted %d bytes", j.Seq, len(formatted))
	return Result{Seq: j.Seq, Markup: markup, State: StateRendered, Err: decodeErr}
}

// fallback renders the input as escaped text, or the error sentinel if the input
// cannot be serialized at all.
func (j Job) fallback(cause error) (r Result) {
	j.logger.Printf("render %d: %v; using fallback", j.Seq, cause)
	r = Result{Seq: j.Seq, State: StateRenderedFallback, Err: cause}

	defer func() {
		if p := recover(); p != nil {
			r.Markup = FormatErrorMarkup(j.dialect)
			r.Err = errors.Join(cause, fmt.Errorf("%w: panic: %v", ErrSerialize, p))
		}
	}()

	formatted, err := Serialize(j.Input)
	if err != nil {
		j.logger.Printf("render %d: fallback failed: %v", j.Seq, err)
		r.Markup = FormatErrorMarkup(j.dialect)
		if !errors.Is(cause, ErrSerialize) {
			r.Err = errors.Join(cause, err)
		}
		return r
	}

	r.Markup = j.dialect.Block(j.dialect.Escape(formatted))
	return r
}
