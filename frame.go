package kinetic

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PDUHeaderSize is the fixed 9-byte header: 1 magic byte + two u32be
// length fields. Mirrors aznet's FrameHeaderSize convention (a constant
// sized off the wire layout, not computed from struct size).
const PDUHeaderSize = 1 + 4 + 4

// PDUMagic is the single version-prefix byte every frame must start with.
const PDUMagic byte = 'F'

const (
	// MaxProtoLength is the Kinetic cap on the protobuf command envelope.
	MaxProtoLength = 1 << 20
	// MaxValueLength is the Kinetic cap on the value payload (1 MiB).
	MaxValueLength = 1 << 20
)

// PDU is one framed message: the fixed header plus the raw protobuf
// envelope bytes and the opaque value payload. Buffers inside a PDU are
// owned by the PDU.
type PDU struct {
	Protobuf []byte
	Value    []byte
}

// EncodePDU writes the fixed header, the protobuf bytes, then the value
// bytes to w as a single frame. Serializing this against concurrent
// writers is the caller's job (Transport.writeFrame); EncodePDU only
// knows how to lay out bytes.
func EncodePDU(w io.Writer, protobuf, value []byte) error {
	if len(protobuf) > MaxProtoLength {
		return fmt.Errorf("kinetic: protobuf length %d exceeds max %d", len(protobuf), MaxProtoLength)
	}
	if len(value) > MaxValueLength {
		return fmt.Errorf("kinetic: value length %d exceeds max %d", len(value), MaxValueLength)
	}

	var header [PDUHeaderSize]byte
	header[0] = PDUMagic
	binary.BigEndian.PutUint32(header[1:5], uint32(len(protobuf)))
	binary.BigEndian.PutUint32(header[5:9], uint32(len(value)))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(protobuf) > 0 {
		if _, err := w.Write(protobuf); err != nil {
			return err
		}
	}
	if len(value) > 0 {
		if _, err := w.Write(value); err != nil {
			return err
		}
	}
	return nil
}

// DecodePDU reads exactly one frame from r: the 9-byte header, then P
// bytes of protobuf, then V bytes of value. It rejects frames whose
// magic byte is wrong or whose declared lengths exceed the Kinetic caps
// without reading the body.
func DecodePDU(r io.Reader) (*PDU, error) {
	var header [PDUHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	if header[0] != PDUMagic {
		return nil, fmt.Errorf("kinetic: bad PDU magic byte 0x%02x", header[0])
	}

	protoLen := binary.BigEndian.Uint32(header[1:5])
	valueLen := binary.BigEndian.Uint32(header[5:9])

	if protoLen > MaxProtoLength {
		return nil, fmt.Errorf("kinetic: protobuf length %d exceeds max %d", protoLen, MaxProtoLength)
	}
	if valueLen > MaxValueLength {
		return nil, fmt.Errorf("kinetic: value length %d exceeds max %d", valueLen, MaxValueLength)
	}

	pdu := &PDU{}
	if protoLen > 0 {
		pdu.Protobuf = make([]byte, protoLen)
		if _, err := io.ReadFull(r, pdu.Protobuf); err != nil {
			return nil, err
		}
	}
	if valueLen > 0 {
		pdu.Value = make([]byte, valueLen)
		if _, err := io.ReadFull(r, pdu.Value); err != nil {
			return nil, err
		}
	}
	return pdu, nil
}
