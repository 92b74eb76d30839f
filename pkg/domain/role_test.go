package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"SUBSCRIBER", "PUBLISHER", "MODERATOR"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		require.Equal(t, Role(s), role)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "publisher", "ADMIN", "SUPERVISOR"} {
		role, err := ParseRole(s)
		require.ErrorIs(t, err, ErrUnknownRole)
		require.Empty(t, role)
	}
}

func TestTokenOverrideKeepsCredentialAndBinding(t *testing.T) {
	value := "tok_1"
	tok := NewToken(&value, "con_1", TokenOptions{Role: RolePublisher, Data: "d", Record: true})

	tok.OverrideOptions(TokenOptions{Role: RoleModerator, Data: "d", Record: false})

	require.Equal(t, "con_1", tok.ConnectionID)
	require.Equal(t, "tok_1", *tok.Value)
	require.Equal(t, RoleModerator, tok.Options.Role)
	require.False(t, tok.Options.Record)
}
