package payment

import (
	"errors"
	"testing"
)

func TestIntentID(t *testing.T) {
	id, err := IntentID("pi_3abc_secret_xyz")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "pi_3abc" {
		t.Errorf("expected pi_3abc, got %q", id)
	}

	for _, bad := range []string{"", "pi_3abc", "_secret_xyz"} {
		if _, err := IntentID(bad); !errors.Is(err, ErrBadClientSecret) {
			t.Errorf("IntentID(%q): expected ErrBadClientSecret, got %v", bad, err)
		}
	}
}
