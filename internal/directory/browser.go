package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the view state of a Browser.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

// String returns the state name used in logs and the health endpoint.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Observer receives load and filter events, typically for metrics.
type Observer interface {
	ObserveLoad(state State, records int, duration time.Duration)
	ObserveFilter(mode MatchMode, matched int)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(State, int, time.Duration) {}
func (nopObserver) ObserveFilter(MatchMode, int)          {}

// Browser owns the dataset and drives the view state machine:
// Loading → Loaded | LoadFailed. Both end states are terminal.
type Browser struct {
	mode        MatchMode
	loadTimeout time.Duration
	logger      *slog.Logger
	observer    Observer

	mu      sync.RWMutex
	state   State
	store   *Store
	vocab   Vocabulary
	loadErr error
	done    chan struct{}
}

// Option configures a Browser.
type Option func(*Browser)

// WithMatchMode sets the category/subcategory match mode.
func WithMatchMode(mode MatchMode) Option {
	return func(b *Browser) { b.mode = mode }
}

// WithLoadTimeout bounds the initial load. Zero means no timeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(b *Browser) { b.loadTimeout = d }
}

// WithLogger sets the operator-facing logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) { b.logger = logger }
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(b *Browser) { b.observer = o }
}

// NewBrowser returns a Browser in the Loading state with an empty dataset.
func NewBrowser(opts ...Option) *Browser {
	b := &Browser{
		logger:   slog.Default(),
		observer: nopObserver{},
		state:    StateLoading,
		store:    EmptyStore(),
		vocab:    BuildVocabulary(nil),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ErrAlreadyLoaded is returned by Load when the Browser left the Loading state.
var ErrAlreadyLoaded = errors.New("browser already loaded")

// Load fetches the dataset once and moves the Browser to Loaded or Failed.
//
// On failure the dataset stays empty, the technical error is logged and
// returned, and presenters receive only LoadFailedMessage.
func (b *Browser) Load(ctx context.Context, loader Loader) error {
	b.mu.RLock()
	state := b.state
	b.mu.RUnlock()
	if state != StateLoading {
		return ErrAlreadyLoaded
	}

	if b.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.loadTimeout)
		defer cancel()
	}

	start := time.Now()
	records, err := loader.Load(ctx)
	elapsed := time.Since(start)

	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			err = NewLoadError(loader.Name(), ErrTransport, err)
		}
		b.finish(StateFailed, EmptyStore(), err)
		b.logger.Error("directory load failed",
			"source", loader.Name(),
			"error", err,
			"code", MapError(err).Code,
			"duration", elapsed,
		)
		b.observer.ObserveLoad(StateFailed, 0, elapsed)
		return err
	}

	store := NewStore(records)
	b.finish(StateLoaded, store, nil)
	b.logger.Info("directory loaded",
		"source", loader.Name(),
		"records", store.Len(),
		"categories", len(b.Vocabulary().Categories),
		"subcategories", len(b.Vocabulary().Subcategories),
		"duration", elapsed,
	)
	b.observer.ObserveLoad(StateLoaded, store.Len(), elapsed)
	return nil
}

func (b *Browser) finish(state State, store *Store, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateLoading {
		return
	}
	b.state = state
	b.store = store
	b.vocab = BuildVocabulary(store.records)
	b.loadErr = err
	close(b.done)
}

// Done is closed once the Browser leaves the Loading state.
func (b *Browser) Done() <-chan struct{} {
	return b.done
}

// State returns the current view state.
func (b *Browser) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Err returns the load error, or nil unless the state is StateFailed.
func (b *Browser) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

// Store returns the loaded dataset. It is empty until the load succeeds.
func (b *Browser) Store() *Store {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store
}

// Vocabulary returns the filter vocabulary of the loaded dataset.
func (b *Browser) Vocabulary() Vocabulary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.vocab
}

// MatchMode returns the configured category match mode.
func (b *Browser) MatchMode() MatchMode {
	return b.mode
}

// Results runs one filter pass over the dataset.
func (b *Browser) Results(c Criteria) []Record {
	results := b.Store().Filter(c, b.mode)
	b.observer.ObserveFilter(b.mode, len(results))
	return results
}

// ApplyFilters stores c in the session and performs exactly one
// filter-and-render pass. The session's selection is left untouched.
func (b *Browser) ApplyFilters(ctx context.Context, sess *Session, c Criteria, p Presenter) error {
	sess.SetCriteria(c)
	return b.ShowList(ctx, sess, p)
}

// ShowList renders the result area for the session's current criteria.
func (b *Browser) ShowList(ctx context.Context, sess *Session, p Presenter) error {
	switch b.State() {
	case StateLoading:
		return p.RenderLoading(ctx)
	case StateFailed:
		return p.RenderError(ctx, LoadFailedMessage)
	}
	return p.RenderList(ctx, b.Results(sess.Criteria()))
}

// Select makes the record with the given ID the session's selection and
// renders its detail.
func (b *Browser) Select(ctx context.Context, sess *Session, id int, p Presenter) error {
	r, ok := b.Store().Get(id)
	if !ok {
		return fmt.Errorf("select %d: %w", id, ErrRecordNotFound)
	}
	sess.Select(r)
	return p.RenderDetail(ctx, &r)
}

// ShowDetail renders the session's selected record, or the empty state.
func (b *Browser) ShowDetail(ctx context.Context, sess *Session, p Presenter) error {
	if r, ok := sess.Selected(); ok {
		return p.RenderDetail(ctx, &r)
	}
	return p.RenderDetail(ctx, nil)
}
