// README: Transaction aggregate and the role-gated status transition table.
package order

import (
	"fmt"
	"net/url"
	"time"

	"keepify/internal/modules/dropzone"
	"keepify/internal/modules/user"
	"keepify/internal/types"
)

type Status string

const (
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusReceived  Status = "RECEIVED"
	StatusRedeemed  Status = "REDEEMED"
)

// Transaction is the booking record. The backend is the system of record;
// this is the transient per-page copy the controller works on.
type Transaction struct {
	ID               types.ID          `json:"id"`
	Dropzone         dropzone.Dropzone `json:"dropzone"`
	Host             user.User         `json:"host"`
	Client           user.User         `json:"client"`
	Cost             types.Money       `json:"cost"`
	CreationTime     time.Time         `json:"creation_time"`
	ReservationStart time.Time         `json:"reservation_start"`
	ReservationEnd   time.Time         `json:"reservation_end"`
	Status           Status            `json:"status"`
	HostToken        string            `json:"host_token,omitempty"`
	ClientNote       string            `json:"client_note,omitempty"`
	ClientReview     string            `json:"client_review,omitempty"`
	ClientStars      int               `json:"client_stars,omitempty"`
}

// Transitions represents the linear order flow (diagram) as code, keyed by
// (current status, viewer role). Only the dropzone host advances an order;
// RECEIVED -> REDEEMED happens through token verification, never here.
var Transitions = map[Status]map[user.Role]Status{
	StatusPaid:      {user.RoleHost: StatusConfirmed},
	StatusConfirmed: {user.RoleHost: StatusReceived},
}

// Next returns the permitted transition for the viewer, if any.
func Next(from Status, role user.Role) (Status, bool) {
	next, ok := Transitions[from][role]
	return next, ok
}

// RoleFor resolves the viewer's role for one transaction: the dropzone host
// sees the host actions, everyone else is a client.
func RoleFor(viewerID types.ID, t *Transaction) user.Role {
	if viewerID == t.Host.ID {
		return user.RoleHost
	}
	return user.RoleClient
}

// Reviewed reports whether the client already left a review; once true, the
// review operation is no longer exposed.
func Reviewed(t *Transaction) bool {
	return t.ClientReview != "" && t.ClientStars > 0
}

// RedeemURL builds the scannable payload shown to the host while the order is
// RECEIVED. The client opens it in person to prove entitlement.
func RedeemURL(webBase string, id types.ID, hostToken string) string {
	return fmt.Sprintf("%s/order/%s/redeem?token=%s", webBase, id, url.QueryEscape(hostToken))
}
