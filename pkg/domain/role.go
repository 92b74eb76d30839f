// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the capability level a connection was granted when it joined.
type Role string

const (
	// RoleSubscriber can only receive streams.
	RoleSubscriber Role = "SUBSCRIBER"
	// RolePublisher can send and receive streams.
	RolePublisher Role = "PUBLISHER"
	// RoleModerator can send, receive and administrate the session.
	RoleModerator Role = "MODERATOR"
)

// ParseRole maps the server's free-form role string onto the closed Role set.
// There is no default role: anything unrecognized is an error.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSubscriber, RolePublisher, RoleModerator:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
