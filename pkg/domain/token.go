package domain

// TokenOptions is the capability set a token encodes: the role, the opaque
// server-side data attached at token generation, the recording flag and an
// optional media-mode override.
type TokenOptions struct {
	Role      Role
	Data      string
	Record    bool
	MediaMode *MediaMode
}

// Token is the credential bound to exactly one connection. Value is nil when
// the snapshot was fetched without the privilege to see credentials.
type Token struct {
	Value        *string
	ConnectionID string
	Options      TokenOptions
}

func NewToken(value *string, connectionID string, opts TokenOptions) *Token {
	return &Token{Value: value, ConnectionID: connectionID, Options: opts}
}

// OverrideOptions replaces the capability set wholesale. The credential and
// the connection binding are never touched. Reconciling which incoming fields
// are honored is the owning connection's job, not the token's.
func (t *Token) OverrideOptions(opts TokenOptions) {
	t.Options = opts
}
