package kinetic

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is the wire-mandated algorithm, not used for confidentiality.

	"github.com/kineticgo/kinetic/kproto"
)

// Authenticator computes and verifies the HMAC that authenticates a
// Command's bytes. It performs no framing and no protocol semantics —
// it only ever touches the serialized command bytes that sit inside a
// Message envelope.
type Authenticator struct {
	key []byte
}

// NewAuthenticator builds an Authenticator bound to a session's shared
// secret.
func NewAuthenticator(key []byte) *Authenticator {
	return &Authenticator{key: key}
}

// Sign computes the HMAC-SHA1 over commandBytes and returns the digest.
func (a *Authenticator) Sign(commandBytes []byte) []byte {
	mac := hmac.New(sha1.New, a.key)
	mac.Write(commandBytes)
	return mac.Sum(nil)
}

// Seal signs commandBytes and returns a ready-to-send Message envelope
// carrying the identity, the digest, and the command bytes themselves.
func (a *Authenticator) Seal(identity int64, commandBytes []byte) *kproto.Message {
	return &kproto.Message{
		AuthType: kproto.AuthType_HMACAUTH,
		HmacAuth: &kproto.HMACauth{
			Identity: identity,
			Hmac:     a.Sign(commandBytes),
		},
		CommandBytes: commandBytes,
	}
}

// Verify recomputes the HMAC over msg.CommandBytes and compares it,
// constant-time, against msg.HmacAuth.Hmac. It returns false for any
// envelope that is not HMACAUTH or carries no auth block.
func (a *Authenticator) Verify(msg *kproto.Message) bool {
	if msg == nil || msg.AuthType != kproto.AuthType_HMACAUTH || msg.HmacAuth == nil {
		return false
	}
	expected := a.Sign(msg.CommandBytes)
	return hmac.Equal(expected, msg.HmacAuth.Hmac)
}
