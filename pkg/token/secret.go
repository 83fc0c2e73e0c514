package token

import "errors"

const redacted = "[REDACTED]"

// ErrEmptySecret is returned when a signing key has no bytes.
var ErrEmptySecret = errors.New("token: signing secret is empty")

// Secret is the symmetric signing key. It is decoded once at startup and
// never rendered: every textual form of a Secret is redacted.
type Secret struct {
	key []byte
}

// NewSecret copies raw into a Secret.
func NewSecret(raw string) Secret {
	return Secret{key: []byte(raw)}
}

// EnvDecode satisfies envconfig.Decoder so the key can be loaded straight
// from the environment without passing through a plain string field.
func (s *Secret) EnvDecode(val string) error {
	s.key = []byte(val)
	return nil
}

// IsZero reports whether no key material is held.
func (s Secret) IsZero() bool { return len(s.key) == 0 }

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return "token.Secret{" + redacted + "}" }

func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// bytes returns a private copy for signing and verification.
func (s Secret) bytes() []byte {
	out := make([]byte, len(s.key))
	copy(out, s.key)
	return out
}
