package kinetic

import (
	"github.com/gogo/protobuf/proto"

	"github.com/kineticgo/kinetic/kproto"
)

// Codec is the protobuf marshaling collaborator the engine consumes. It
// is declared as an interface so the wire format of the Command message
// can evolve without touching the framer or correlator.
type Codec interface {
	Marshal(cmd *kproto.Command) ([]byte, error)
	Unmarshal(b []byte, cmd *kproto.Command) error
	Size(cmd *kproto.Command) int
}

// gogoCodec implements Codec on top of github.com/gogo/protobuf/proto's
// reflection-based marshaler. The kproto message types carry the same
// struct tags protoc-gen-gogo would emit, so no generated Marshal method
// is required.
type gogoCodec struct{}

// DefaultCodec is the Codec used when a Session is not given one
// explicitly via WithCodec.
var DefaultCodec Codec = gogoCodec{}

func (gogoCodec) Marshal(cmd *kproto.Command) ([]byte, error) {
	return proto.Marshal(cmd)
}

func (gogoCodec) Unmarshal(b []byte, cmd *kproto.Command) error {
	cmd.Reset()
	return proto.Unmarshal(b, cmd)
}

func (gogoCodec) Size(cmd *kproto.Command) int {
	return proto.Size(cmd)
}

// marshalMessage encodes the outer envelope (auth type, HMAC block,
// command bytes) the same way it encodes a Command: via proto.Marshal.
func marshalMessage(msg *kproto.Message) ([]byte, error) {
	return proto.Marshal(msg)
}

func unmarshalMessage(b []byte, msg *kproto.Message) error {
	msg.Reset()
	return proto.Unmarshal(b, msg)
}
