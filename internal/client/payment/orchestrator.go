// Package payment drives the pay-and-poll workflow for a single purchase
// attempt against the QPay gateway: initiate through a remote function,
// receive a QR payload, then poll the status-check function on a fixed
// interval until the purchase is PAID or the attempt is abandoned.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/logging"
)

// State of a purchase attempt.
type State int

const (
	StateIdle State = iota
	StateAwaitingQR
	StateAwaitingPayment
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingQR:
		return "awaitingQR"
	case StateAwaitingPayment:
		return "awaitingPayment"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome of a resolved attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeAbandoned
)

// ErrAttemptActive is returned by Begin when the orchestrator already owns a
// purchase attempt. One orchestrator drives exactly one attempt.
var ErrAttemptActive = errors.New("purchase attempt already active")

// Invoker executes a named remote function. *gateway.Client satisfies it.
type Invoker interface {
	ExecuteJSON(ctx context.Context, functionID string, in, out any) error
}

// Config carries the payment function ids and the poll interval.
type Config struct {
	CreateFunctionID string
	StatusFunctionID string
	PollInterval     time.Duration
}

// Request describes what the user is buying.
type Request struct {
	UserID       string
	Target       models.Target
	Amount       int64
	Label        string
	DurationDays int // bundles only; zero omits the field on the wire
}

type createRequest struct {
	UserID       string `json:"userId"`
	MovieID      string `json:"movieId"`
	Amount       int64  `json:"amount"`
	PurchaseType string `json:"purchaseType"`
	MovieTitle   string `json:"movieTitle"`
	Duration     int    `json:"duration,omitempty"`
}

type createResponse struct {
	QRImage    string `json:"qrImage"`
	PurchaseID string `json:"purchaseId"`
	Error      string `json:"error"`
}

type statusRequest struct {
	PurchaseID string `json:"purchaseId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Orchestrator owns one purchase attempt:
// idle → awaitingQR → awaitingPayment → resolved(success|abandoned).
// The polling loop is a cancellable background task with single-owner
// semantics; Cancel (user abort or teardown) stops it without any remote
// cancellation call; the remote record keeps whatever status it had until
// it naturally expires or a later payment event updates it.
type Orchestrator struct {
	inv Invoker
	cfg Config
	log logging.Logger

	mu         sync.Mutex
	state      State
	purchaseID string
	qrImage    string
	cancel     context.CancelFunc
	done       chan Outcome
}

func New(inv Invoker, cfg Config, log logging.Logger) *Orchestrator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &Orchestrator{
		inv:  inv,
		cfg:  cfg,
		log:  log,
		done: make(chan Outcome, 1),
	}
}

// Begin initiates the purchase and, on success, returns the QR payload and
// starts the polling task. A failure to initiate (transport error, failed
// execution, or a rejection in the response body) aborts at idle and starts
// no polling.
func (o *Orchestrator) Begin(ctx context.Context, req Request) (string, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return "", ErrAttemptActive
	}
	o.state = StateAwaitingQR
	o.mu.Unlock()

	purchaseType := "movie"
	if req.Target.Kind == models.TargetBundle {
		purchaseType = "subscription"
	}
	creq := createRequest{
		UserID:       req.UserID,
		MovieID:      req.Target.Wire(),
		Amount:       req.Amount,
		PurchaseType: purchaseType,
		MovieTitle:   req.Label,
		Duration:     req.DurationDays,
	}

	var resp createResponse
	if err := o.inv.ExecuteJSON(ctx, o.cfg.CreateFunctionID, creq, &resp); err != nil {
		o.abort()
		return "", fmt.Errorf("payment initiation: %w", err)
	}
	if resp.Error != "" {
		o.abort()
		return "", fmt.Errorf("payment initiation rejected: %s", resp.Error)
	}
	if resp.PurchaseID == "" {
		o.abort()
		return "", errors.New("payment initiation returned no purchase id")
	}

	pollCtx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	o.purchaseID = resp.PurchaseID
	o.qrImage = resp.QRImage
	o.state = StateAwaitingPayment
	o.cancel = cancel
	o.mu.Unlock()

	go o.poll(pollCtx)

	return resp.QRImage, nil
}

func (o *Orchestrator) abort() {
	o.mu.Lock()
	o.state = StateIdle
	o.mu.Unlock()
}

// poll invokes the status-check function every PollInterval tick. A failing
// tick is logged and swallowed so a single transient failure does not stop
// the loop; a PAID status resolves the attempt and stops the ticker.
func (o *Orchestrator) poll(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	id := o.PurchaseID()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var st statusResponse
			err := o.inv.ExecuteJSON(ctx, o.cfg.StatusFunctionID, statusRequest{PurchaseID: id}, &st)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				o.log.Warn(ctx, "payment status check failed, will retry", "purchaseId", id, "error", err)
				continue
			}
			if st.Status == models.StatusPaid {
				o.resolve(OutcomeSuccess)
				return
			}
		}
	}
}

// Cancel abandons an in-flight attempt: the polling task stops and the QR
// state clears. Safe to call in any state and more than once; must be called
// on teardown so no polling outlives the attempt's owner.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateAwaitingPayment {
		return
	}
	o.resolveLocked(OutcomeAbandoned)
}

func (o *Orchestrator) resolve(outcome Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolveLocked(outcome)
}

func (o *Orchestrator) resolveLocked(outcome Outcome) {
	if o.state == StateResolved {
		return
	}
	o.state = StateResolved
	o.qrImage = ""
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.done <- outcome
}

// Done yields the attempt's outcome exactly once when it resolves.
func (o *Orchestrator) Done() <-chan Outcome {
	return o.done
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) PurchaseID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.purchaseID
}

// QRImage returns the pending QR payload, or "" once the attempt resolved.
func (o *Orchestrator) QRImage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.qrImage
}
