// README: Transaction and checkout endpoints of the backend API.
package backend

import (
	"context"
	"net/http"
	"net/url"

	"keepify/internal/modules/checkout"
	"keepify/internal/modules/order"
	"keepify/internal/types"
)

// ListTransactions optionally filters by status; an empty status lists all.
func (c *Client) ListTransactions(ctx context.Context, status order.Status) ([]order.Transaction, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": []string{string(status)}}
	}
	var out struct {
		Transactions []order.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/transactions", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

func (c *Client) GetTransaction(ctx context.Context, id types.ID) (*order.Transaction, error) {
	var out struct {
		Transaction order.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodGet, "/transactions/"+string(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}

func (c *Client) UpdateTransactionStatus(ctx context.Context, id types.ID, next order.Status) (*order.Transaction, error) {
	body := map[string]string{"status": string(next)}
	var out struct {
		Transaction order.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPatch, "/transactions/"+string(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}

func (c *Client) CreateCheckoutIntent(ctx context.Context, req checkout.IntentRequest) (*checkout.Intent, error) {
	body := map[string]any{
		"dropzone_id":       req.DropzoneID,
		"items":             req.Items,
		"client_note":       req.ClientNote,
		"reservation_start": req.Start,
		"reservation_end":   req.End,
		"idempotency_key":   req.IdempotencyKey,
	}
	var out checkout.Intent
	if err := c.do(ctx, http.MethodPost, "/checkout/intent", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyRedemptionToken is one-shot on the backend: a consumed token comes
// back success=false, not as an error.
func (c *Client) VerifyRedemptionToken(ctx context.Context, id types.ID, token string) (bool, error) {
	body := map[string]string{"token": token}
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions/"+string(id)+"/verify_token", nil, body, &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *Client) SubmitClientReview(ctx context.Context, id types.ID, text string, stars int) (*order.Transaction, error) {
	body := map[string]any{"client_review": text, "client_stars": stars}
	var out struct {
		Transaction order.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPatch, "/transactions/"+string(id)+"/client_review", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}
