package draft

import (
	"context"
	"testing"
	"time"
)

func TestAddItemCapsAtTen(t *testing.T) {
	o := Initial()
	for i := 0; i < 25; i++ {
		o = AddItem(o)
	}
	if o.Items != 10 {
		t.Errorf("expected cap 10, got %d", o.Items)
	}
}

func TestMinusItemFloorsAtZero(t *testing.T) {
	o := Initial()
	o = AddItem(o)
	o = MinusItem(o)
	o = MinusItem(o)
	o = MinusItem(o)
	if o.Items != 0 {
		t.Errorf("expected store floor 0, got %d", o.Items)
	}
}

func TestItemsStayWithinBandUnderMixedSequence(t *testing.T) {
	o := SetItems(Initial(), 1)
	seq := []func(Order) Order{
		AddItem, AddItem, MinusItem, AddItem, MinusItem, MinusItem,
		MinusItem, AddItem, AddItem, AddItem, AddItem, AddItem,
		AddItem, AddItem, AddItem, AddItem, AddItem, MinusItem,
	}
	for i, step := range seq {
		o = step(o)
		if o.Items < 0 || o.Items > 10 {
			t.Fatalf("step %d: items %d outside [0,10]", i, o.Items)
		}
	}
}

// SetItems is the bulk-restore path and deliberately skips the clamp that
// AddItem/MinusItem enforce.
func TestSetItemsIsUnclamped(t *testing.T) {
	o := SetItems(Initial(), 42)
	if o.Items != 42 {
		t.Errorf("expected unclamped 42, got %d", o.Items)
	}
	o = SetItems(o, -3)
	if o.Items != -3 {
		t.Errorf("expected unclamped -3, got %d", o.Items)
	}
}

func TestClearResetsEverything(t *testing.T) {
	start := time.Date(2021, 3, 29, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	o := SetStartTime(Initial(), start)
	o = SetEndTime(o, end)
	o = SetItems(o, 7)

	o = Clear(o)
	if o.StartTime != nil || o.EndTime != nil || o.Items != 0 {
		t.Errorf("expected cleared draft, got %+v", o)
	}
}

func TestReducersDoNotShareTimePointers(t *testing.T) {
	start := time.Date(2021, 3, 29, 0, 0, 0, 0, time.UTC)
	a := SetStartTime(Initial(), start)
	b := SetStartTime(a, start.AddDate(0, 0, 5))
	if a.StartTime.Equal(*b.StartTime) {
		t.Error("expected distinct start times after second set")
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	start := time.Date(2021, 3, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 30, 0, 0, 0, 0, time.UTC)
	o := SetStartTime(Initial(), start)
	o = SetEndTime(o, end)
	o = SetItems(o, 2)

	if err := repo.Save(ctx, "s1", o); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.StartTime.Equal(*o.StartTime) || !got.EndTime.Equal(*o.EndTime) || got.Items != o.Items {
		t.Errorf("round trip mismatch: want %+v, got %+v", o, got)
	}
}

func TestRepositoryLoadMissing(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.Load(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	if err := repo.Save(ctx, "s1", SetItems(Initial(), 3)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx, "s1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
