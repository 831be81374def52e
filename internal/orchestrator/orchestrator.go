// Package orchestrator owns the lifecycle of a page analysis request:
// validation, the pending state, and applying or surfacing the outcome.
package orchestrator

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/yildizm/speedx/internal/logger"
	"github.com/yildizm/speedx/internal/metrics"
	"github.com/yildizm/speedx/internal/monitor"
	"github.com/yildizm/speedx/internal/notify"
	"github.com/yildizm/speedx/internal/service"
)

// InvalidURLMessage is shown when analyze is called with an empty URL
const InvalidURLMessage = "Invalid url!"

// DefaultNotifyDuration is how long error notifications are displayed
const DefaultNotifyDuration = time.Second

// State is the lifecycle state of a single analysis request
type State int

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Analyzer performs the remote analysis. *service.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*service.Response, error)
}

// Ticket identifies one dispatched request
type Ticket struct {
	Seq      uint64
	URL      string
	IssuedAt time.Time
}

// Outcome is what came back for a ticket. Exactly one of Response and Err
// is normally set.
type Outcome struct {
	Ticket   *Ticket
	Response *service.Response
	Err      error
	Duration time.Duration
}

// Event reports a state change of one request. Every dispatched request
// produces Pending, then Success or Error, then Idle.
type Event struct {
	Seq       uint64
	URL       string
	State     State
	Discarded bool // the response was dropped by the stale fence
}

// Orchestrator runs analyses against an Analyzer and applies the results to
// a metrics.Store. Calls may overlap; each runs independently.
type Orchestrator struct {
	analyzer Analyzer
	store    *metrics.Store
	sink     notify.Sink
	logger   *logger.Logger
	session  *monitor.Session

	notifyDuration time.Duration
	fenceStale     bool
	observers      []func(Event)
	now            func() time.Time

	mu          sync.Mutex
	inFlight    int
	seq         uint64
	lastOutcome State
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithSession records lifecycle counters into s
func WithSession(s *monitor.Session) Option {
	return func(o *Orchestrator) { o.session = s }
}

// WithNotifyDuration sets how long error notifications stay visible
func WithNotifyDuration(d time.Duration) Option {
	return func(o *Orchestrator) { o.notifyDuration = d }
}

// WithStaleFence drops any response whose request is not the most recently
// issued one. Without it the response that resolves last wins, even if its
// request was issued first.
func WithStaleFence(enabled bool) Option {
	return func(o *Orchestrator) { o.fenceStale = enabled }
}

// WithObserver registers a callback for request events. Callbacks run
// synchronously on the goroutine that caused the event.
func WithObserver(fn func(Event)) Option {
	return func(o *Orchestrator) { o.observers = append(o.observers, fn) }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator
func New(analyzer Analyzer, store *metrics.Store, sink notify.Sink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer:       analyzer,
		store:          store,
		sink:           sink,
		logger:         logger.Discard(),
		session:        monitor.NewSession(),
		notifyDuration: DefaultNotifyDuration,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Store returns the metrics store results are applied to
func (o *Orchestrator) Store() *metrics.Store {
	return o.store
}

// Session returns the lifecycle counters
func (o *Orchestrator) Session() *monitor.Session {
	return o.session
}

// SetNotifyDuration changes the notification duration for later errors
func (o *Orchestrator) SetNotifyDuration(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notifyDuration = d
}

// Loading reports whether at least one request is in flight
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight > 0
}

// State is Pending while any request is in flight and Idle otherwise
func (o *Orchestrator) State() State {
	if o.Loading() {
		return StatePending
	}
	return StateIdle
}

// LastOutcome returns Success or Error for the most recently resolved
// request, or Idle if none has resolved yet
func (o *Orchestrator) LastOutcome() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastOutcome
}

// Analyze validates url, dispatches it and applies the outcome. It returns
// a *ValidationError for an empty url, the request error for failures, and
// nil otherwise. Every failure has already been surfaced through the sink.
func (o *Orchestrator) Analyze(ctx context.Context, url string) error {
	ticket, err := o.Begin(url)
	if err != nil {
		return err
	}
	return o.Resolve(o.Dispatch(ctx, ticket))
}

// Begin validates url and enters Pending. An empty url is reported through
// the sink and returns a *ValidationError without entering Pending.
func (o *Orchestrator) Begin(url string) (*Ticket, error) {
	if url == "" {
		o.session.Rejected.Inc()
		o.sink.NotifyError(InvalidURLMessage, o.currentNotifyDuration())
		return nil, NewValidationError("url", url, InvalidURLMessage)
	}

	o.mu.Lock()
	o.seq++
	o.inFlight++
	ticket := &Ticket{Seq: o.seq, URL: url, IssuedAt: o.now()}
	o.mu.Unlock()

	o.session.Issued.Inc()
	o.session.InFlight.Inc()
	o.logger.InfoWithFields("analysis dispatched", []logger.Field{
		logger.Seq(ticket.Seq),
		logger.F("url", url),
	})
	o.emit(Event{Seq: ticket.Seq, URL: url, State: StatePending})

	return ticket, nil
}

// Dispatch performs the network call for ticket. It touches no orchestrator
// state and may run on any goroutine.
func (o *Orchestrator) Dispatch(ctx context.Context, ticket *Ticket) Outcome {
	start := o.now()
	resp, err := o.analyzer.Analyze(ctx, ticket.URL)
	return Outcome{
		Ticket:   ticket,
		Response: resp,
		Err:      err,
		Duration: o.now().Sub(start),
	}
}

// Resolve applies out and leaves Pending for its ticket. Leaving Pending
// happens on every path, including a panicking sink.
func (o *Orchestrator) Resolve(out Outcome) (err error) {
	if out.Ticket == nil {
		return fmt.Errorf("resolve: outcome has no ticket")
	}

	final := StateSuccess
	discarded := false
	defer func() {
		if r := recover(); r != nil {
			final = StateError
			err = fmt.Errorf("resolving analysis %d: %v", out.Ticket.Seq, r)
			o.logger.Error("recovered while resolving analysis: %v", r)
		}
		o.settle(out, final, discarded)
	}()

	fields := []logger.Field{
		logger.Seq(out.Ticket.Seq),
		logger.F("url", out.Ticket.URL),
		logger.Duration(out.Duration),
	}

	if o.isStale(out.Ticket) {
		discarded = true
		o.session.Discarded.Inc()
		o.logger.DebugWithFields("discarding response of superseded request", fields)
		return nil
	}

	if out.Err == nil && out.Response == nil {
		out.Err = &service.ServiceError{Type: service.ErrTypeMalformedResponse}
	}

	if out.Err != nil {
		final = StateError
		o.session.Failed.Inc()
		o.logger.WarnWithFields("analysis failed", append(fields, logger.Error(out.Err)))
		o.sink.NotifyError(service.UserMessage(out.Err), o.currentNotifyDuration())
		return out.Err
	}

	resp := out.Response
	fields = append(fields, logger.F("status", resp.StatusCode), logger.F("request_id", resp.RequestID))

	if resp.StatusCode != http.StatusOK || !resp.Success {
		// Reported as success with nothing applied; the user is not told.
		o.session.Ignored.Inc()
		o.logger.DebugWithFields("response carried no metrics to apply", append(fields, logger.F("success", resp.Success)))
		return nil
	}

	o.store.Set(resp.Data)
	o.session.Applied.Inc()
	o.logger.InfoWithFields("metrics applied", fields)
	return nil
}

func (o *Orchestrator) isStale(ticket *Ticket) bool {
	if !o.fenceStale {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return ticket.Seq != o.seq
}

func (o *Orchestrator) settle(out Outcome, final State, discarded bool) {
	o.mu.Lock()
	if o.inFlight > 0 {
		o.inFlight--
	}
	o.lastOutcome = final
	o.mu.Unlock()

	o.session.InFlight.Dec()
	o.session.Latency.Record(out.Duration)

	o.emit(Event{Seq: out.Ticket.Seq, URL: out.Ticket.URL, State: final, Discarded: discarded})
	o.emit(Event{Seq: out.Ticket.Seq, URL: out.Ticket.URL, State: StateIdle, Discarded: discarded})
}

func (o *Orchestrator) currentNotifyDuration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.notifyDuration
}

func (o *Orchestrator) emit(ev Event) {
	for _, fn := range o.observers {
		fn(ev)
	}
}
