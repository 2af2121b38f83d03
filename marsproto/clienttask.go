package marsproto

import (
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/wxmet/mars2grib/dict"
)

// ClientTask is the initial frame of spec §4.7: a MARS request plus
// environment, the callback address the server should dial back, and a
// 64-bit nonce the server echoes on every subsequent callback so the
// client can tell its callbacks apart from anyone else's (ClientTask.cc).
type ClientTask struct {
	Request     dict.Dict
	Environment dict.Dict

	CallbackHost string
	CallbackPort int

	// DataHandle describes what the client expects to send or receive;
	// spec §6 calls this the "data-handle descriptor". It is opaque to
	// this package.
	DataHandle string

	Nonce uint64
}

// NewClientTask builds a ClientTask with a fresh nonce, following the most
// recent shift layout used by the collaborator (pid<<48 | tid<<32 |
// unixtime&0xffffffff; spec §9 explicitly forbids reconciling this with an
// older pid<<48|tid<<16 variant — implement the current one and nothing
// else).
func NewClientTask(request, environment dict.Dict, callbackHost string, callbackPort int, dataHandle string) *ClientTask {
	return &ClientTask{
		Request:      request,
		Environment:  environment,
		CallbackHost: callbackHost,
		CallbackPort: callbackPort,
		DataHandle:   dataHandle,
		Nonce:        newNonce(),
	}
}

// newNonce packs a process id, a synthetic thread id, and the current Unix
// time into a 64-bit value. Go exposes no stable OS-thread-id analogous to
// pthread_self(); a uuid-derived 16-bit value stands in for it (see
// DESIGN.md).
func newNonce() uint64 {
	pid := uint64(os.Getpid()) & 0xffff
	tid := uint64(syntheticThreadID()) & 0xffff
	t := uint64(time.Now().Unix()) & 0xffffffff
	return pid<<48 | tid<<32 | t
}

func syntheticThreadID() uint16 {
	id := uuid.New()
	return binary.BigEndian.Uint16(id[:2])
}

// Send writes the "MarsTask" frame to w: a dummy 8-byte request id, the
// request and environment dictionaries, the callback host/port, the
// nonce, and the data-handle descriptor (spec §6, "MARS wire framing").
func (t *ClientTask) Send(w io.Writer) error {
	if err := writeString(w, "MarsTask"); err != nil {
		return err
	}
	if err := writeUint64(w, 0); err != nil {
		return err
	}
	if err := writeDict(w, t.Request); err != nil {
		return err
	}
	if err := writeDict(w, t.Environment); err != nil {
		return err
	}
	if err := writeString(w, t.CallbackHost); err != nil {
		return err
	}
	if err := writeInt32(w, int32(t.CallbackPort)); err != nil {
		return err
	}
	if err := writeUint64(w, t.Nonce); err != nil {
		return err
	}
	return writeString(w, t.DataHandle)
}

// ReceiveClientTask reads back a frame written by Send. Used by test
// doubles and by a server-side implementation of this collaborator; the
// encoder itself never calls this.
func ReceiveClientTask(r io.Reader) (*ClientTask, error) {
	tag, err := readString(r)
	if err != nil {
		return nil, err
	}
	if tag != "MarsTask" {
		return nil, errors.Errorf("marsproto: unexpected frame tag %q, want \"MarsTask\"", tag)
	}
	if _, err := readUint64(r); err != nil { // dummy request id
		return nil, err
	}
	request, err := readDict(r)
	if err != nil {
		return nil, err
	}
	environment, err := readDict(r)
	if err != nil {
		return nil, err
	}
	host, err := readString(r)
	if err != nil {
		return nil, err
	}
	port, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	nonce, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	handle, err := readString(r)
	if err != nil {
		return nil, err
	}
	return &ClientTask{
		Request:      request,
		Environment:  environment,
		CallbackHost: host,
		CallbackPort: int(port),
		DataHandle:   handle,
		Nonce:        nonce,
	}, nil
}

// Acknowledge writes the single-byte acknowledgement the server sends back
// after receiving a ClientTask.
func Acknowledge(w io.Writer) error { return writeByte(w, 'a') }

// ReceiveAcknowledge reads and validates the single-byte acknowledgement.
func ReceiveAcknowledge(r io.Reader) error {
	b, err := readByte(r)
	if err != nil {
		return err
	}
	if b != 'a' {
		return &Error{Op: "receive acknowledgement", Code: b, Message: "expected 'a'"}
	}
	return nil
}
