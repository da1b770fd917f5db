// Package commands holds minimal reference CommandBuilder implementations
// for the four verbs the controller's tests and the kineticcli smoke
// client exercise: Get, Put, Delete, Noop. They are deliberately thin —
// real callers are expected to supply their own builders; command
// construction itself is kept out of the engine.
package commands

import (
	"fmt"

	"github.com/kineticgo/kinetic"
	"github.com/kineticgo/kinetic/kproto"
)

// Entry is the minimal key/value/version tuple a Get populates from the
// server's reply.
type Entry struct {
	Key     []byte
	Value   []byte
	Version []byte
	Tag     []byte
}

// Get builds a GET for Key and copies the server's reply into Out once
// the operation completes successfully.
type Get struct {
	Key []byte
	Out *Entry
}

func (g *Get) Build(session *kinetic.Session) (*kproto.Command, []byte, kinetic.PostHook, error) {
	if len(g.Key) == 0 {
		return nil, nil, nil, fmt.Errorf("commands: Get requires a non-empty key")
	}
	cmd := &kproto.Command{
		Header: &kproto.Command_Header{
			MessageType: kproto.MessageTypePtr(kproto.Command_GET),
		},
		Body: &kproto.Command_Body{
			KeyValue: &kproto.Command_KeyValue{Key: g.Key},
		},
	}
	return cmd, nil, g.copyReply, nil
}

// copyReply is Get's post-hook: it runs after HandleResult has parsed
// the server's status, and copies the value and version metadata from
// the reply into the caller-supplied Entry.
func (g *Get) copyReply(op *kinetic.Operation) error {
	if g.Out == nil {
		return nil
	}
	resp := op.Response()
	if resp == nil || resp.GetBody() == nil || resp.GetBody().KeyValue == nil {
		return fmt.Errorf("commands: GET reply missing key/value body")
	}
	kv := resp.GetBody().KeyValue
	g.Out.Key = g.Key
	g.Out.Value = op.ResponseValue()
	g.Out.Version = kv.DbVersion
	g.Out.Tag = kv.Tag
	return nil
}

// Put builds a PUT for Key/Value, optionally asserting the expected
// current version (DbVersion) and setting the new version (NewVersion).
type Put struct {
	Key         []byte
	Value       []byte
	DbVersion   []byte
	NewVersion  []byte
	Tag         []byte
}

func (p *Put) Build(session *kinetic.Session) (*kproto.Command, []byte, kinetic.PostHook, error) {
	if len(p.Key) == 0 {
		return nil, nil, nil, fmt.Errorf("commands: Put requires a non-empty key")
	}
	cmd := &kproto.Command{
		Header: &kproto.Command_Header{
			MessageType: kproto.MessageTypePtr(kproto.Command_PUT),
		},
		Body: &kproto.Command_Body{
			KeyValue: &kproto.Command_KeyValue{
				Key:        p.Key,
				DbVersion:  p.DbVersion,
				NewVersion: p.NewVersion,
				Tag:        p.Tag,
			},
		},
	}
	return cmd, p.Value, nil, nil
}

// Delete builds a DELETE for Key, optionally asserting DbVersion.
type Delete struct {
	Key       []byte
	DbVersion []byte
}

func (d *Delete) Build(session *kinetic.Session) (*kproto.Command, []byte, kinetic.PostHook, error) {
	if len(d.Key) == 0 {
		return nil, nil, nil, fmt.Errorf("commands: Delete requires a non-empty key")
	}
	cmd := &kproto.Command{
		Header: &kproto.Command_Header{
			MessageType: kproto.MessageTypePtr(kproto.Command_DELETE),
		},
		Body: &kproto.Command_Body{
			KeyValue: &kproto.Command_KeyValue{
				Key:       d.Key,
				DbVersion: d.DbVersion,
			},
		},
	}
	return cmd, nil, nil, nil
}

// Noop builds a NOOP: no body, used to probe liveness of a session
// (and, for kineticcli, as the default smoke-test operation).
type Noop struct{}

func (Noop) Build(session *kinetic.Session) (*kproto.Command, []byte, kinetic.PostHook, error) {
	cmd := &kproto.Command{
		Header: &kproto.Command_Header{
			MessageType: kproto.MessageTypePtr(kproto.Command_NOOP),
		},
	}
	return cmd, nil, nil, nil
}
