// README: Stripe payment confirmation against a backend-created intent.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

var ErrBadClientSecret = errors.New("malformed payment client secret")

type StripePayer struct {
	api *client.API
}

func NewStripePayer(apiKey string) *StripePayer {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripePayer{api: api}
}

// IntentID extracts the payment-intent id from a client secret of the form
// pi_xxx_secret_yyy.
func IntentID(clientSecret string) (string, error) {
	i := strings.Index(clientSecret, "_secret_")
	if i <= 0 {
		return "", ErrBadClientSecret
	}
	return clientSecret[:i], nil
}

// Confirm attaches the capture widget's payment-method token to the intent
// and confirms the charge. Declines come back as Stripe errors untouched.
func (p *StripePayer) Confirm(ctx context.Context, clientSecret, paymentMethod string) error {
	id, err := IntentID(clientSecret)
	if err != nil {
		return err
	}
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethod),
	}
	// stripe-go does not expose client_secret on PaymentIntentConfirmParams;
	// send the same form field through the params extras.
	params.AddExtra("client_secret", clientSecret)
	params.Context = ctx
	pi, err := p.api.PaymentIntents.Confirm(id, params)
	if err != nil {
		return err
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		return nil
	default:
		return fmt.Errorf("payment not completed: intent status %s", pi.Status)
	}
}
