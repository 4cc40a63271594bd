// README: Order lifecycle controller; advances status through the backend and tracks the attempt lifecycle.
package order

import (
	"context"
	"errors"
	"sync"

	"keepify/internal/modules/user"
	"keepify/internal/types"
)

var (
	ErrForbidden     = errors.New("viewer may not advance this order")
	ErrNoTransition  = errors.New("no transition from current status")
	ErrBusy          = errors.New("a transition attempt is already in flight")
	ErrNotRedeemed   = errors.New("order is not redeemed yet")
	ErrReviewed      = errors.New("review already submitted")
	ErrInvalidReview = errors.New("review needs text and 1-5 stars")
	ErrMissingToken  = errors.New("redemption token is required")
)

// Gateway is the slice of the backend API the controller drives. Every call
// is a single HTTP round trip; errors come back unchanged.
type Gateway interface {
	UpdateTransactionStatus(ctx context.Context, id types.ID, next Status) (*Transaction, error)
	VerifyRedemptionToken(ctx context.Context, id types.ID, token string) (bool, error)
	SubmitClientReview(ctx context.Context, id types.ID, text string, stars int) (*Transaction, error)
}

type AttemptState int

const (
	AttemptIdle AttemptState = iota
	AttemptPending
	AttemptSucceeded
	AttemptFailed
)

// Attempt is the request lifecycle of the latest backend call issued by this
// controller. A Pending attempt suppresses any further call.
type Attempt struct {
	State  AttemptState
	Reason string
}

// Controller holds one page view's copy of a transaction. The viewer's role
// is resolved once at construction; the local status only moves after the
// backend acknowledges.
type Controller struct {
	gw     Gateway
	mu     sync.Mutex
	tx     Transaction
	role   user.Role
	viewer types.ID

	attempt Attempt
}

func NewController(gw Gateway, tx Transaction, viewerID types.ID) *Controller {
	return &Controller{
		gw:     gw,
		tx:     tx,
		role:   RoleFor(viewerID, &tx),
		viewer: viewerID,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tx.Status
}

func (c *Controller) Role() user.Role {
	return c.role
}

func (c *Controller) Attempt() Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Transaction returns a copy of the locally held record.
func (c *Controller) Transaction() Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tx
}

// begin flips the attempt to Pending, refusing if one is already in flight.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt.State == AttemptPending {
		return ErrBusy
	}
	c.attempt = Attempt{State: AttemptPending}
	return nil
}

func (c *Controller) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.attempt = Attempt{State: AttemptFailed, Reason: err.Error()}
		return
	}
	c.attempt = Attempt{State: AttemptSucceeded}
}

// Advance issues the next status patch for the viewer. The transition table
// is consulted before any network call: a client viewer never reaches the
// backend. On failure the local status is left untouched.
func (c *Controller) Advance(ctx context.Context) (Status, error) {
	c.mu.Lock()
	current := c.tx.Status
	c.mu.Unlock()

	next, ok := Next(current, c.role)
	if !ok {
		if c.role != user.RoleHost {
			return current, ErrForbidden
		}
		return current, ErrNoTransition
	}

	if err := c.begin(); err != nil {
		return current, err
	}
	_, err := c.gw.UpdateTransactionStatus(ctx, c.tx.ID, next)
	c.finish(err)
	if err != nil {
		return current, err
	}

	c.mu.Lock()
	c.tx.Status = next
	c.mu.Unlock()
	return next, nil
}

// Redeem verifies the presented token. Verification is one-shot on the
// backend: a consumed token reports ok=false and nothing is mutated locally.
func (c *Controller) Redeem(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, ErrMissingToken
	}
	if err := c.begin(); err != nil {
		return false, err
	}
	ok, err := c.gw.VerifyRedemptionToken(ctx, c.tx.ID, token)
	c.finish(err)
	if err != nil {
		return false, err
	}
	if ok {
		c.mu.Lock()
		c.tx.Status = StatusRedeemed
		c.mu.Unlock()
	}
	return ok, nil
}

// SubmitReview sends the client's one-time review after redemption.
func (c *Controller) SubmitReview(ctx context.Context, text string, stars int) error {
	c.mu.Lock()
	tx := c.tx
	c.mu.Unlock()

	if c.role != user.RoleClient {
		return ErrForbidden
	}
	if tx.Status != StatusRedeemed {
		return ErrNotRedeemed
	}
	if Reviewed(&tx) {
		return ErrReviewed
	}
	if text == "" || stars < 1 || stars > 5 {
		return ErrInvalidReview
	}

	if err := c.begin(); err != nil {
		return err
	}
	_, err := c.gw.SubmitClientReview(ctx, tx.ID, text, stars)
	c.finish(err)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.tx.ClientReview = text
	c.tx.ClientStars = stars
	c.mu.Unlock()
	return nil
}
