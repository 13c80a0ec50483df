package domain

import "time"

// AuthEventKind identifies the credential operation an AuthEvent records.
type AuthEventKind string

const (
	AuthEventRegister AuthEventKind = "register"
	AuthEventLogin    AuthEventKind = "login"
)

// AuthEvent is one entry of the authentication audit trail.
type AuthEvent struct {
	Kind    AuthEventKind
	Email   string
	Success bool
	Reason  string // empty on success
	IP      string
	At      time.Time
}
