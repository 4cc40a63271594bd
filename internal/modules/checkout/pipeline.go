// README: Booking pipeline; composes the draft, the payment intent, and the charge confirmation.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"keepify/internal/modules/draft"
	"keepify/internal/types"
)

var (
	ErrIncompleteDraft = errors.New("draft needs an ordered date range and at least one item")
	ErrIncompleteCard  = errors.New("card details are incomplete")
	ErrBusy            = errors.New("a submission is already in flight")
)

// Intent is the backend's answer to a create-transaction call: the payment
// secret to confirm against plus the new transaction id.
type Intent struct {
	ClientSecret  string   `json:"client_secret"`
	TransactionID types.ID `json:"transaction_id"`
}

type IntentRequest struct {
	DropzoneID     types.ID
	Items          int
	ClientNote     string
	Start          time.Time
	End            time.Time
	IdempotencyKey string
}

type Gateway interface {
	CreateCheckoutIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// Payer confirms a charge against a payment intent. Card data never passes
// through here, only the processor-issued secret and method token.
type Payer interface {
	Confirm(ctx context.Context, clientSecret, paymentMethod string) error
}

// CardForm carries what little the PCI-isolated capture widget reports back:
// three completion flags and the opaque payment-method token.
type CardForm struct {
	NumberComplete bool   `json:"number_complete"`
	ExpiryComplete bool   `json:"expiry_complete"`
	CVCComplete    bool   `json:"cvc_complete"`
	PaymentMethod  string `json:"payment_method"`
}

// Complete gates the submit action; it is not actionable until all three
// fields report complete.
func (f CardForm) Complete() bool {
	return f.NumberComplete && f.ExpiryComplete && f.CVCComplete
}

// Bookable reports whether the draft can be priced and submitted: an ordered
// date range and at least one item.
func Bookable(o draft.Order) bool {
	return o.StartTime != nil && o.EndTime != nil && !o.EndTime.Before(*o.StartTime) && o.Items >= 1
}

// InclusiveDays counts reservation days, both endpoints included. A one-night
// range (start 03-29, end 03-30) is two days.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// TotalCost is rate x items x inclusive day count.
func TotalCost(rate types.Money, items int, start, end time.Time) types.Money {
	return rate.Mul(int64(items) * int64(InclusiveDays(start, end)))
}

type Pipeline struct {
	payer  Payer
	drafts draft.Repository

	mu       sync.Mutex
	inflight map[string]bool
}

func NewPipeline(payer Payer, drafts draft.Repository) *Pipeline {
	return &Pipeline{payer: payer, drafts: drafts, inflight: make(map[string]bool)}
}

// Restore rehydrates the draft from its mirror when the in-memory copy was
// reset by the navigation to checkout (e.g. through a login redirect).
func (p *Pipeline) Restore(ctx context.Context, sessionID string, current draft.Order) draft.Order {
	if current.StartTime != nil && current.EndTime != nil {
		return current
	}
	restored, err := p.drafts.Load(ctx, sessionID)
	if err != nil {
		return current
	}
	return restored
}

func (p *Pipeline) acquire(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight[sessionID] {
		return false
	}
	p.inflight[sessionID] = true
	return true
}

func (p *Pipeline) release(sessionID string) {
	p.mu.Lock()
	delete(p.inflight, sessionID)
	p.mu.Unlock()
}

// Submit creates the transaction through the session's credentialed gateway,
// confirms the charge, and clears the draft mirror. On any failure the draft
// is preserved so the user can retry.
func (p *Pipeline) Submit(ctx context.Context, sessionID string, gw Gateway, o draft.Order, dropzoneID types.ID, note string, card CardForm) (types.ID, error) {
	if !Bookable(o) {
		return "", ErrIncompleteDraft
	}
	if !card.Complete() {
		return "", ErrIncompleteCard
	}
	if !p.acquire(sessionID) {
		return "", ErrBusy
	}
	defer p.release(sessionID)

	intent, err := gw.CreateCheckoutIntent(ctx, IntentRequest{
		DropzoneID:     dropzoneID,
		Items:          o.Items,
		ClientNote:     note,
		Start:          *o.StartTime,
		End:            *o.EndTime,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	if err := p.payer.Confirm(ctx, intent.ClientSecret, card.PaymentMethod); err != nil {
		return "", err
	}

	// Best effort: the booking already succeeded, a stale mirror only costs
	// the user an explicit clear on the next visit.
	_ = p.drafts.Delete(ctx, sessionID)
	return intent.TransactionID, nil
}
