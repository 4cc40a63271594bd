package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keepify/internal/modules/order"
)

type recordedCall struct {
	method string
	path   string
	status int
}

type fakeRecorder struct {
	calls []recordedCall
}

func (r *fakeRecorder) RecordGatewayCall(method, path string, status int, _ time.Duration) {
	r.calls = append(r.calls, recordedCall{method, path, status})
}

func TestBearerAndQueryWiring(t *testing.T) {
	var gotAuth, gotQuery, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"transactions": []any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/").WithToken("tok-1")
	if _, err := c.ListTransactions(context.Background(), order.StatusPaid); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/transactions" || gotQuery != "status=PAID" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery)
	}
}

func TestErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "not your transaction"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetTransaction(context.Background(), "tx-1")
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *backend.Error, got %v", err)
	}
	if be.StatusCode != http.StatusForbidden || be.Message != "not your transaction" {
		t.Errorf("error not passed through unchanged: %+v", be)
	}
}

func TestUpdateStatusSendsPatchBody(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"transaction": map[string]any{"id": "tx-1", "status": "CONFIRMED"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	tx, err := c.UpdateTransactionStatus(context.Background(), "tx-1", order.StatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPatch || gotBody["status"] != "CONFIRMED" {
		t.Errorf("unexpected request: %s %+v", gotMethod, gotBody)
	}
	if tx.Status != order.StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", tx.Status)
	}
}

func TestVerifyTokenSuccessFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	ok, err := NewClient(srv.URL).VerifyRedemptionToken(context.Background(), "tx-1", "used-token")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("consumed token must report success=false without an error")
	}
}

func TestRecorderSeesEveryCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no such dropzone"})
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	c := NewClient(srv.URL).WithRecorder(rec)
	if _, err := c.GetDropzone(context.Background(), "dz-404"); err == nil {
		t.Fatal("expected 404 error")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(rec.calls))
	}
	got := rec.calls[0]
	if got.method != http.MethodGet || got.path != "/dropzones/dz-404" || got.status != http.StatusNotFound {
		t.Errorf("unexpected recorded call: %+v", got)
	}
}

func TestWithTokenDoesNotMutateParent(t *testing.T) {
	parent := NewClient("http://backend")
	child := parent.WithToken("tok-child")
	if parent.bearer() != "" {
		t.Errorf("parent token leaked: %q", parent.bearer())
	}
	if child.bearer() != "tok-child" {
		t.Errorf("child token missing: %q", child.bearer())
	}
}
