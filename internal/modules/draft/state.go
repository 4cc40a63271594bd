// README: Draft order state and pure reducers with the item-count cap.
package draft

import "time"

const maxItems = 10

// Order is the in-progress booking selection. Items is clamped to [0,10] by
// AddItem/MinusItem; SetItems overwrites without clamping, matching how a
// restored session writes the count back in bulk.
type Order struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Items     int        `json:"items"`
}

func Initial() Order {
	return Order{StartTime: nil, EndTime: nil, Items: 0}
}

func SetStartTime(o Order, t time.Time) Order {
	o.StartTime = &t
	return o
}

func SetEndTime(o Order, t time.Time) Order {
	o.EndTime = &t
	return o
}

func SetItems(o Order, n int) Order {
	o.Items = n
	return o
}

// AddItem increments by one, no-op at the cap of 10.
func AddItem(o Order) Order {
	if o.Items < maxItems {
		o.Items++
	}
	return o
}

// MinusItem decrements by one, no-op at zero. The HTTP layer additionally
// refuses to go below one; the store itself stops at zero.
func MinusItem(o Order) Order {
	if o.Items > 0 {
		o.Items--
	}
	return o
}

func Clear(Order) Order {
	return Initial()
}
