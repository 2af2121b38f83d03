package marsproto

import (
	"io"
	"net"

	"github.com/pkg/errors"
)

// CallbackCode is one of the single-byte codes the server sends on each
// callback connection (spec §4.7).
type CallbackCode byte

const (
	CodeOK           CallbackCode = 'o' // transfer complete
	CodeRequestData  CallbackCode = 'r' // server wants the client to send data
	CodeWrite        CallbackCode = 'w' // server is sending data
	CodeFatalError   CallbackCode = 'e' // fatal error, message follows
	CodeInfo         CallbackCode = 'I'
	CodeWarning      CallbackCode = 'W'
	CodeDebug        CallbackCode = 'D'
	CodeError        CallbackCode = 'E'
	CodePing         CallbackCode = 'p'
	CodeStatistics   CallbackCode = 's'
	CodeGet          CallbackCode = 'h' // reserved, unimplemented
	CodeMove         CallbackCode = 'm' // reserved, unimplemented
	CodeCancel       CallbackCode = 'X' // reserved, unimplemented
	CodeRetry        CallbackCode = 'y' // reserved, unimplemented
	CodeNotification CallbackCode = 'N' // reserved, unimplemented
	CodeNotifyStart  CallbackCode = 'S' // reserved, unimplemented
	CodeTimeout      CallbackCode = 't' // reserved, unimplemented
)

// reservedCodes close the conversation with an error rather than being
// silently ignored (spec §4.7's "must close with error" row).
var reservedCodes = map[CallbackCode]bool{
	CodeGet: true, CodeMove: true, CodeCancel: true, CodeRetry: true,
	CodeNotification: true, CodeNotifyStart: true, CodeTimeout: true,
}

// LogLine is a forwarded Info/Warning/Debug/Error message from the server,
// carried on a callback with code 'I'/'W'/'D'/'E'.
type LogLine struct {
	Code    CallbackCode
	Message string
}

// Statistic is one (key, value) pair of a statistics callback (code 's').
type Statistic struct {
	Key   string
	Value string
}

// Outcome is the decoded result of processing exactly one callback
// connection (DHSProtocol::wait's one iteration).
type Outcome struct {
	Done        bool // the caller should stop waiting: 'o', 'r', 'w' or 'e'
	Error       error
	RequestData bool  // true on CodeRequestData: reply with RespondRequestData
	WriteBytes  int64 // set on CodeWrite: bytes the server is about to write
	Log         *LogLine
	Statistics  []Statistic
	Ping        bool
}

// Callback is an ephemeral TCP listener the client opens before sending its
// ClientTask, mirroring eckit::net::EphemeralTCPServer's default
// behaviour (DHSProtocol.cc's SimpleCallback).
type Callback struct {
	ln net.Listener
}

// NewCallback opens a loopback listener on an OS-assigned port.
func NewCallback() (*Callback, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "marsproto: open callback listener")
	}
	return &Callback{ln: ln}, nil
}

// Host returns the address the server should dial to reach this callback.
func (c *Callback) Host() string {
	return c.ln.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the port the server should dial.
func (c *Callback) Port() int {
	return c.ln.Addr().(*net.TCPAddr).Port
}

// Accept blocks for the next inbound callback connection.
func (c *Callback) Accept() (net.Conn, error) {
	conn, err := c.ln.Accept()
	return conn, errors.WithStack(err)
}

// Close releases the listener.
func (c *Callback) Close() error { return c.ln.Close() }

// Wait reads one callback message from conn, verifies its nonce against
// task, and dispatches on its code (DHSProtocol::wait's switch statement).
// It replies on conn only to 'p', echoing the ping; after an 'r' outcome
// the caller sends the total byte count with RespondRequestData.
func Wait(conn net.Conn, task *ClientTask) (Outcome, error) {
	nonce, err := readUint64(conn)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "marsproto: read callback nonce")
	}
	if nonce != task.Nonce {
		return Outcome{}, &Error{Op: "wait", Message: "nonce mismatch"}
	}

	codeByte, err := readByte(conn)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "marsproto: read callback code")
	}
	code := CallbackCode(codeByte)

	if reservedCodes[code] {
		return Outcome{}, &Error{Op: "wait", Code: byte(code), Message: "reserved code, not implemented"}
	}

	switch code {
	case CodeOK:
		return Outcome{Done: true}, nil

	case CodeRequestData:
		// No payload accompanies this code; the caller already knows how
		// many bytes it intends to send and replies with RespondRequestData.
		return Outcome{Done: true, RequestData: true}, nil

	case CodeWrite:
		n, err := readUint64(conn)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "marsproto: read write byte count")
		}
		return Outcome{Done: true, WriteBytes: int64(n)}, nil

	case CodeFatalError:
		msg, err := readString(conn)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "marsproto: read fatal error message")
		}
		return Outcome{Done: true, Error: &Error{Op: "wait", Code: byte(code), Message: msg}}, nil

	case CodeInfo, CodeWarning, CodeDebug, CodeError:
		msg, err := readString(conn)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "marsproto: read log line")
		}
		return Outcome{Log: &LogLine{Code: code, Message: msg}}, nil

	case CodePing:
		if err := writeByte(conn, byte(CodePing)); err != nil {
			return Outcome{}, errors.Wrap(err, "marsproto: echo ping")
		}
		return Outcome{Ping: true}, nil

	case CodeStatistics:
		n, err := readInt32(conn)
		if err != nil {
			return Outcome{}, errors.Wrap(err, "marsproto: read statistics count")
		}
		stats := make([]Statistic, 0, n)
		for i := int32(0); i < n; i++ {
			k, err := readString(conn)
			if err != nil {
				return Outcome{}, errors.Wrap(err, "marsproto: read statistic key")
			}
			v, err := readString(conn)
			if err != nil {
				return Outcome{}, errors.Wrap(err, "marsproto: read statistic value")
			}
			stats = append(stats, Statistic{Key: k, Value: v})
		}
		return Outcome{Statistics: stats}, nil

	default:
		return Outcome{}, &Error{Op: "wait", Code: byte(code), Message: "unknown code"}
	}
}

// RespondRequestData writes back the total byte count the client intends
// to send, the reply expected after a CodeRequestData callback.
func RespondRequestData(conn io.Writer, totalBytes int64) error {
	return writeUint64(conn, uint64(totalBytes))
}

// WriteTrailer writes the (version, crc) trailer a client mid-send closes
// with on cleanup (DHSProtocol::cleanup).
func WriteTrailer(conn io.Writer, version uint32, crc uint64) error {
	if err := writeUint64(conn, uint64(version)); err != nil {
		return err
	}
	return writeUint64(conn, crc)
}
