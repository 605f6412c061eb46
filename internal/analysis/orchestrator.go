package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/logger"
	"github.com/yildizm/TweetSense/internal/sheet"
)

// Service is the part of the backend client the orchestrator drives
type Service interface {
	Analyze(ctx context.Context, texts []string) ([]backend.ResultItem, error)
	Dashboard(ctx context.Context, texts []string) (*backend.Dashboard, error)
	BaseURL() string
}

// Options controls optional orchestrator behavior
type Options struct {
	// VaderBreakdown fetches /vader-dashboard after a successful analysis
	VaderBreakdown bool
}

// Ticket identifies one analysis request
type Ticket struct {
	Token uint64
	ctx   context.Context
}

// Context returns the request context, canceled once a newer ticket is issued
func (t *Ticket) Context() context.Context {
	return t.ctx
}

// Orchestrator submits parsed rows to the service and keeps only the
// newest request's answer.
type Orchestrator struct {
	service Service
	options Options
	logger  *logger.Logger

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// New creates a new orchestrator
func New(service Service, options Options, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.New("analysis", nil)
	}
	return &Orchestrator{
		service: service,
		options: options,
		logger:  log,
	}
}

// Begin issues a new ticket and cancels the previous one
func (o *Orchestrator) Begin(ctx context.Context) *Ticket {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}

	o.latest++
	reqCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	return &Ticket{Token: o.latest, ctx: reqCtx}
}

// IsLatest reports whether token belongs to the newest ticket
func (o *Orchestrator) IsLatest(token uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return token == o.latest
}

// Close cancels the outstanding ticket, if any
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// Analyze sends rows in one request. A response that arrives after a
// newer ticket was issued yields ErrSuperseded.
func (o *Orchestrator) Analyze(ticket *Ticket, rows []sheet.Row) (*Outcome, error) {
	if len(rows) == 0 {
		return nil, sheet.ErrNoValidRows
	}

	start := time.Now()
	texts := sheet.Texts(rows)

	o.logger.Debug("analysis #%d: submitting %d rows", ticket.Token, len(texts))

	items, err := o.service.Analyze(ticket.ctx, texts)
	if !o.IsLatest(ticket.Token) {
		o.logger.Debug("analysis #%d: discarding superseded response", ticket.Token)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, newAnalysisError(err, o.service.BaseURL())
	}

	results := fromItems(items)
	outcome := &Outcome{
		Token:   ticket.Token,
		Results: results,
		Stats:   ComputeStats(results),
	}

	if o.options.VaderBreakdown {
		breakdown, err := o.Breakdown(ticket, rows)
		switch {
		case errors.Is(err, ErrSuperseded):
			return nil, err
		case err != nil:
			o.logger.WarnWithFields("VADER breakdown unavailable", []logger.Field{logger.Error(err)})
		default:
			outcome.Breakdown = breakdown
		}
	}

	outcome.Duration = time.Since(start)

	o.logger.InfoWithFields("analysis complete", []logger.Field{
		logger.F("token", ticket.Token),
		logger.Count(len(results)),
		logger.F("positive", outcome.Stats.Positive),
		logger.F("negative", outcome.Stats.Negative),
		logger.Duration(outcome.Duration),
	})

	return outcome, nil
}

// Breakdown fetches the VADER summary for rows
func (o *Orchestrator) Breakdown(ticket *Ticket, rows []sheet.Row) (*Breakdown, error) {
	if len(rows) == 0 {
		return nil, sheet.ErrNoValidRows
	}

	dash, err := o.service.Dashboard(ticket.ctx, sheet.Texts(rows))
	if !o.IsLatest(ticket.Token) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, newAnalysisError(err, o.service.BaseURL())
	}

	return fromDashboard(dash), nil
}

// Run begins a ticket and analyses rows with it
func (o *Orchestrator) Run(ctx context.Context, rows []sheet.Row) (*Outcome, error) {
	return o.Analyze(o.Begin(ctx), rows)
}
