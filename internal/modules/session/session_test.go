package session

import (
	"sync"
	"testing"

	"keepify/internal/modules/draft"
	"keepify/internal/modules/user"
)

func TestSetUserMarksLoggedIn(t *testing.T) {
	s := SetUser(Initial(), user.User{ID: "u1", Email: "a@b.c"})
	if !s.IsLogin {
		t.Error("expected IsLogin true")
	}
	if s.User == nil || s.User.ID != "u1" {
		t.Errorf("expected stored user u1, got %+v", s.User)
	}
}

func TestUpdateUserMergesWithoutTouchingAuth(t *testing.T) {
	s := SetUser(Initial(), user.User{ID: "u1", FirstName: "Ann", Email: "a@b.c"})
	name := "Anna"
	s = UpdateUser(s, user.Update{FirstName: &name})
	if s.User.FirstName != "Anna" {
		t.Errorf("expected merged first name, got %q", s.User.FirstName)
	}
	if s.User.Email != "a@b.c" {
		t.Errorf("expected untouched email, got %q", s.User.Email)
	}
	if !s.IsLogin {
		t.Error("expected IsLogin unchanged")
	}
}

func TestUpdateUserOnEmptySessionIsNoop(t *testing.T) {
	name := "Anna"
	s := UpdateUser(Initial(), user.Update{FirstName: &name})
	if s.User != nil || s.IsLogin {
		t.Errorf("expected initial state, got %+v", s)
	}
}

func TestLogoutResets(t *testing.T) {
	s := SetUser(Initial(), user.User{ID: "u1"})
	s = Logout(s)
	if s.User != nil || s.IsLogin {
		t.Errorf("expected initial state, got %+v", s)
	}
}

func TestManagerDispatch(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	ok := m.Dispatch(sess.ID, func(s State) State {
		return SetUser(s, user.User{ID: "u1"})
	})
	if !ok {
		t.Fatal("dispatch on existing session failed")
	}
	got, _ := m.Get(sess.ID)
	if got.State.User == nil || got.State.User.ID != "u1" {
		t.Errorf("expected user u1 in session, got %+v", got.State.User)
	}

	if m.Dispatch("missing", Logout) {
		t.Error("dispatch on missing session should report false")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager()
	sess := m.Create()
	m.SetToken(sess.ID, "tok-1")
	m.DispatchDraft(sess.ID, func(o draft.Order) draft.Order {
		return draft.SetItems(o, 3)
	})

	snap, ok := m.Snapshot(sess.ID)
	if !ok || snap.Token != "tok-1" || snap.Draft.Items != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	snap.Token = "scribbled"
	snap.Draft.Items = 99
	got, _ := m.Snapshot(sess.ID)
	if got.Token != "tok-1" || got.Draft.Items != 3 {
		t.Errorf("snapshot writes leaked into the manager: %+v", got)
	}

	if _, ok := m.Snapshot("missing"); ok {
		t.Error("snapshot of a missing session should report false")
	}
}

func TestAttachTokenOnlyWhenEmpty(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	if !m.AttachToken(sess.ID, "first") {
		t.Fatal("attach to a fresh session should succeed")
	}
	if m.AttachToken(sess.ID, "second") {
		t.Error("attach must not replace an existing credential")
	}
	got, _ := m.Snapshot(sess.ID)
	if got.Token != "first" {
		t.Errorf("expected first credential kept, got %q", got.Token)
	}
	if m.AttachToken("missing", "tok") {
		t.Error("attach on a missing session should report false")
	}
}

// Readers and writers hit one session from many goroutines; run with -race.
func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()
	sess := m.Create()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				m.SetToken(sess.ID, "tok")
				m.AttachToken(sess.ID, "tok-late")
				m.Dispatch(sess.ID, func(s State) State {
					return SetUser(s, user.User{ID: "u1"})
				})
				m.DispatchDraft(sess.ID, draft.AddItem)
				if snap, ok := m.Snapshot(sess.ID); ok {
					_ = snap.Token
					_ = snap.Draft.Items
				}
			}
		}()
	}
	wg.Wait()

	got, _ := m.Snapshot(sess.ID)
	if got.Token != "tok" {
		t.Errorf("expected final token tok, got %q", got.Token)
	}
	if got.Draft.Items != 10 {
		t.Errorf("expected the item cap after concurrent adds, got %d", got.Draft.Items)
	}
}
