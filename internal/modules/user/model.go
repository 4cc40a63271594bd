// README: User record and role definitions.
package user

import "keepify/internal/types"

type Role string

const (
	RoleClient Role = "client"
	RoleHost   Role = "host"
)

type User struct {
	ID        types.ID `json:"id"`
	FirstName string   `json:"fname"`
	LastName  string   `json:"lname"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Photo     string   `json:"photo,omitempty"`
}

// Update holds a partial profile change; nil fields are left untouched.
type Update struct {
	FirstName *string `json:"fname,omitempty"`
	LastName  *string `json:"lname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Photo     *string `json:"photo,omitempty"`
}
