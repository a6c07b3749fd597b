package domain

import "time"

// User is the domain model for site accounts. Exactly one privileged role
// exists: IsAdmin. There is no role hierarchy.
type User struct {
	ID                 string
	Username           string
	Email              string
	PasswordHash       string
	IsAdmin            bool
	Avatar             string
	HasClaimedFreePlan bool
	ClaimedIP          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
