// Package kproto holds the wire message shapes for the Kinetic protocol
// envelope and command. These are kept separate from the engine package
// the way generated protobuf code is conventionally kept in its own
// package; unlike real generated code they are hand-maintained (no protoc
// invocation is part of this build), but they carry the same struct tags
// protoc-gen-gogo would emit so github.com/gogo/protobuf/proto can marshal
// and unmarshal them by reflection without a generated Marshal method.
package kproto

import "github.com/gogo/protobuf/proto"

// AuthType identifies how a Message's command bytes were authenticated.
type AuthType int32

const (
	AuthType_INVALID            AuthType = 0
	AuthType_HMACAUTH           AuthType = 1
	AuthType_PINAUTH            AuthType = 2
	AuthType_UNSOLICITEDSTATUS  AuthType = 3
)

var authTypeNames = map[AuthType]string{
	AuthType_INVALID:           "INVALID",
	AuthType_HMACAUTH:          "HMACAUTH",
	AuthType_PINAUTH:           "PINAUTH",
	AuthType_UNSOLICITEDSTATUS: "UNSOLICITEDSTATUS",
}

func (a AuthType) String() string {
	if s, ok := authTypeNames[a]; ok {
		return s
	}
	return "UNKNOWN_AUTH_TYPE"
}

// Command_MessageType identifies the operation a Command carries.
type Command_MessageType int32

const (
	Command_INVALID_MESSAGE_TYPE Command_MessageType = 0
	Command_GET_RESPONSE         Command_MessageType = 1
	Command_GET                  Command_MessageType = 2
	Command_PUT_RESPONSE         Command_MessageType = 3
	Command_PUT                  Command_MessageType = 4
	Command_DELETE_RESPONSE      Command_MessageType = 5
	Command_DELETE               Command_MessageType = 6
	Command_NOOP                 Command_MessageType = 22
	Command_NOOP_RESPONSE        Command_MessageType = 23
	Command_FLUSHALLDATA         Command_MessageType = 32
	Command_FLUSHALLDATA_RESPONSE Command_MessageType = 33
)

// Command_Status_StatusCode is the server's protocol status, one-to-one
// with the public Status taxonomy's server-code members.
type Command_Status_StatusCode int32

const (
	Command_Status_NOT_ATTEMPTED            Command_Status_StatusCode = 0
	Command_Status_SUCCESS                  Command_Status_StatusCode = 1
	Command_Status_HMAC_FAILURE             Command_Status_StatusCode = 2
	Command_Status_NOT_AUTHORIZED           Command_Status_StatusCode = 3
	Command_Status_VERSION_FAILURE          Command_Status_StatusCode = 4
	Command_Status_INTERNAL_ERROR           Command_Status_StatusCode = 5
	Command_Status_HEADER_REQUIRED          Command_Status_StatusCode = 6
	Command_Status_NOT_FOUND                Command_Status_StatusCode = 7
	Command_Status_VERSION_MISMATCH         Command_Status_StatusCode = 8
	Command_Status_SERVICE_BUSY             Command_Status_StatusCode = 9
	Command_Status_EXPIRED                  Command_Status_StatusCode = 10
	Command_Status_DATA_ERROR               Command_Status_StatusCode = 11
	Command_Status_PERM_DATA_ERROR          Command_Status_StatusCode = 12
	Command_Status_REMOTE_CONNECTION_ERROR  Command_Status_StatusCode = 13
	Command_Status_NO_SPACE                 Command_Status_StatusCode = 14
	Command_Status_NO_SUCH_HMAC_ALGORITHM   Command_Status_StatusCode = 15
	Command_Status_INVALID_REQUEST          Command_Status_StatusCode = 16
	Command_Status_NESTED_OPERATION_ERRORS  Command_Status_StatusCode = 17
	Command_Status_DEVICE_LOCKED            Command_Status_StatusCode = 18
	Command_Status_DEVICE_ALREADY_UNLOCKED  Command_Status_StatusCode = 19
	Command_Status_CONNECTION_TERMINATED    Command_Status_StatusCode = 20
	Command_Status_INVALID_BATCH            Command_Status_StatusCode = 21
)

// HMACauth carries the client identity and the HMAC digest of the
// Command bytes it accompanies.
type HMACauth struct {
	Identity int64  `protobuf:"varint,1,opt,name=identity" json:"identity,omitempty"`
	Hmac     []byte `protobuf:"bytes,2,opt,name=hmac" json:"hmac,omitempty"`
}

func (m *HMACauth) Reset()         { *m = HMACauth{} }
func (m *HMACauth) String() string { return proto.CompactTextString(m) }
func (*HMACauth) ProtoMessage()    {}

// Message is the outermost envelope written to the wire after the fixed
// PDU header: an auth type, the HMAC auth block (when AuthType is
// HMACAUTH), and the serialized Command bytes the HMAC was computed over.
type Message struct {
	AuthType     AuthType  `protobuf:"varint,1,opt,name=authType,enum=kproto.AuthType" json:"authType,omitempty"`
	HmacAuth     *HMACauth `protobuf:"bytes,2,opt,name=hmacAuth" json:"hmacAuth,omitempty"`
	CommandBytes []byte    `protobuf:"bytes,3,opt,name=commandBytes" json:"commandBytes,omitempty"`
}

func (m *Message) Reset()         { *m = Message{} }
func (m *Message) String() string { return proto.CompactTextString(m) }
func (*Message) ProtoMessage()    {}

// Command_Header carries connection and sequencing metadata.
type Command_Header struct {
	ClusterVersion *int64                `protobuf:"varint,1,opt,name=clusterVersion" json:"clusterVersion,omitempty"`
	Identity       *int64                `protobuf:"varint,2,opt,name=identity" json:"identity,omitempty"`
	ConnectionID   *int64                `protobuf:"varint,3,opt,name=connectionID" json:"connectionID,omitempty"`
	Sequence       *int64                `protobuf:"varint,4,opt,name=sequence" json:"sequence,omitempty"`
	AckSequence    *int64                `protobuf:"varint,5,opt,name=ackSequence" json:"ackSequence,omitempty"`
	MessageType    *Command_MessageType  `protobuf:"varint,6,opt,name=messageType,enum=kproto.Command_MessageType" json:"messageType,omitempty"`
	Timeout        *int64                `protobuf:"varint,7,opt,name=timeout" json:"timeout,omitempty"`
}

func (m *Command_Header) Reset()         { *m = Command_Header{} }
func (m *Command_Header) String() string { return proto.CompactTextString(m) }
func (*Command_Header) ProtoMessage()    {}

func (m *Command_Header) GetConnectionID() int64 {
	if m != nil && m.ConnectionID != nil {
		return *m.ConnectionID
	}
	return 0
}

func (m *Command_Header) GetAckSequence() int64 {
	if m != nil && m.AckSequence != nil {
		return *m.AckSequence
	}
	return 0
}

func (m *Command_Header) GetMessageType() Command_MessageType {
	if m != nil && m.MessageType != nil {
		return *m.MessageType
	}
	return Command_INVALID_MESSAGE_TYPE
}

// Command_KeyValue is the GET/PUT/DELETE key-value payload descriptor.
// The object's bytes themselves travel as the PDU's value payload, not
// inside the protobuf.
type Command_KeyValue struct {
	Key             []byte `protobuf:"bytes,1,opt,name=key" json:"key,omitempty"`
	NewVersion      []byte `protobuf:"bytes,2,opt,name=newVersion" json:"newVersion,omitempty"`
	DbVersion       []byte `protobuf:"bytes,3,opt,name=dbVersion" json:"dbVersion,omitempty"`
	Tag             []byte `protobuf:"bytes,4,opt,name=tag" json:"tag,omitempty"`
	Algorithm       *int32 `protobuf:"varint,5,opt,name=algorithm" json:"algorithm,omitempty"`
	Synchronization *int32 `protobuf:"varint,6,opt,name=synchronization" json:"synchronization,omitempty"`
}

func (m *Command_KeyValue) Reset()         { *m = Command_KeyValue{} }
func (m *Command_KeyValue) String() string { return proto.CompactTextString(m) }
func (*Command_KeyValue) ProtoMessage()    {}

// Command_Body wraps the operation-specific payload. Only KeyValue is
// modeled; range and batch bodies are out of scope for the controller.
type Command_Body struct {
	KeyValue *Command_KeyValue `protobuf:"bytes,1,opt,name=keyValue" json:"keyValue,omitempty"`
}

func (m *Command_Body) Reset()         { *m = Command_Body{} }
func (m *Command_Body) String() string { return proto.CompactTextString(m) }
func (*Command_Body) ProtoMessage()    {}

// Command_Status is the server's report of how the operation fared.
type Command_Status struct {
	Code            *Command_Status_StatusCode `protobuf:"varint,1,opt,name=code,enum=kproto.Command_Status_StatusCode" json:"code,omitempty"`
	StatusMessage   *string                    `protobuf:"bytes,2,opt,name=statusMessage" json:"statusMessage,omitempty"`
	DetailedMessage []byte                     `protobuf:"bytes,3,opt,name=detailedMessage" json:"detailedMessage,omitempty"`
}

func (m *Command_Status) Reset()         { *m = Command_Status{} }
func (m *Command_Status) String() string { return proto.CompactTextString(m) }
func (*Command_Status) ProtoMessage()    {}

func (m *Command_Status) GetCode() Command_Status_StatusCode {
	if m != nil && m.Code != nil {
		return *m.Code
	}
	return Command_Status_NOT_ATTEMPTED
}

// Command is the protobuf payload authenticated by the HMAC in the
// envelope's HmacAuth block. It never contains the value payload.
type Command struct {
	Header *Command_Header  `protobuf:"bytes,1,opt,name=header" json:"header,omitempty"`
	Body   *Command_Body    `protobuf:"bytes,2,opt,name=body" json:"body,omitempty"`
	Status *Command_Status  `protobuf:"bytes,3,opt,name=status" json:"status,omitempty"`
}

func (m *Command) Reset()         { *m = Command{} }
func (m *Command) String() string { return proto.CompactTextString(m) }
func (*Command) ProtoMessage()    {}

func (m *Command) GetHeader() *Command_Header {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *Command) GetStatus() *Command_Status {
	if m != nil {
		return m.Status
	}
	return nil
}

func (m *Command) GetBody() *Command_Body {
	if m != nil {
		return m.Body
	}
	return nil
}

// Int64Ptr, Int32Ptr and StringPtr are small helpers mirroring the
// proto.Int64/proto.String convenience constructors generated code
// normally provides for optional scalar fields.
func Int64Ptr(v int64) *int64 { return &v }
func Int32Ptr(v int32) *int32 { return &v }
func StringPtr(v string) *string { return &v }
func StatusCodePtr(v Command_Status_StatusCode) *Command_Status_StatusCode { return &v }
func MessageTypePtr(v Command_MessageType) *Command_MessageType { return &v }
