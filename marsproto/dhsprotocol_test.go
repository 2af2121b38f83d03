package marsproto

import (
	"net"
	"strconv"
	"testing"

	"github.com/wxmet/mars2grib/dict"
)

func newTestTask(t *testing.T) *ClientTask {
	t.Helper()
	task := NewClientTask(dict.NewMapDict(nil), dict.NewMapDict(nil), "127.0.0.1", 1, "")
	return task
}

func TestWaitHandlesOK(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	go func() {
		writeUint64(server, task.Nonce)
		writeByte(server, byte(CodeOK))
	}()

	outcome, err := Wait(client, task)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if !outcome.Done {
		t.Error("CodeOK should set Done")
	}
}

func TestWaitRejectsNonceMismatch(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	go func() {
		writeUint64(server, task.Nonce+1)
		writeByte(server, byte(CodeOK))
	}()

	_, err := Wait(client, task)
	if err == nil {
		t.Fatal("Wait() should reject a mismatched nonce")
	}
}

func TestWaitRejectsReservedCodes(t *testing.T) {
	reserved := []CallbackCode{CodeGet, CodeMove, CodeCancel, CodeRetry, CodeNotification, CodeNotifyStart, CodeTimeout}

	for _, code := range reserved {
		code := code
		t.Run(string(rune(code)), func(t *testing.T) {
			server, client := net.Pipe()
			defer server.Close()
			defer client.Close()

			task := newTestTask(t)

			go func() {
				writeUint64(server, task.Nonce)
				writeByte(server, byte(code))
			}()

			_, err := Wait(client, task)
			if err == nil {
				t.Fatalf("Wait() should reject reserved code %q", code)
			}
		})
	}
}

func TestWaitDecodesWriteByteCount(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	go func() {
		writeUint64(server, task.Nonce)
		writeByte(server, byte(CodeWrite))
		writeUint64(server, 4096)
	}()

	outcome, err := Wait(client, task)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if outcome.WriteBytes != 4096 {
		t.Errorf("WriteBytes = %d, want 4096", outcome.WriteBytes)
	}
}

func TestWaitDecodesFatalError(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	go func() {
		writeUint64(server, task.Nonce)
		writeByte(server, byte(CodeFatalError))
		writeString(server, "disk unavailable")
	}()

	outcome, err := Wait(client, task)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if outcome.Error == nil {
		t.Fatal("CodeFatalError should populate Outcome.Error")
	}
	if got := outcome.Error.Error(); got == "" {
		t.Error("Outcome.Error.Error() should not be empty")
	}
}

func TestWaitEchoesPing(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	done := make(chan byte, 1)
	go func() {
		writeUint64(server, task.Nonce)
		writeByte(server, byte(CodePing))
		b, _ := readByte(server)
		done <- b
	}()

	outcome, err := Wait(client, task)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if !outcome.Ping {
		t.Error("CodePing should set Outcome.Ping")
	}
	if echoed := <-done; echoed != byte(CodePing) {
		t.Errorf("echoed byte = %q, want 'p'", echoed)
	}
}

func TestWaitDecodesStatistics(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	task := newTestTask(t)

	go func() {
		writeUint64(server, task.Nonce)
		writeByte(server, byte(CodeStatistics))
		writeInt32(server, 2)
		writeString(server, "bytes")
		writeString(server, "1024")
		writeString(server, "fields")
		writeString(server, "3")
	}()

	outcome, err := Wait(client, task)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if len(outcome.Statistics) != 2 {
		t.Fatalf("len(Statistics) = %d, want 2", len(outcome.Statistics))
	}
	if outcome.Statistics[0].Key != "bytes" || outcome.Statistics[0].Value != "1024" {
		t.Errorf("Statistics[0] = %+v", outcome.Statistics[0])
	}
}

func TestCallbackReportsDialableAddress(t *testing.T) {
	cb, err := NewCallback()
	if err != nil {
		t.Fatalf("NewCallback() error: %v", err)
	}
	defer cb.Close()

	if cb.Port() == 0 {
		t.Error("Port() should be a non-zero OS-assigned port")
	}

	accepted := make(chan error, 1)
	go func() {
		conn, err := cb.Accept()
		if err == nil {
			conn.Close()
		}
		accepted <- err
	}()

	conn, err := net.Dial("tcp", net.JoinHostPort(cb.Host(), strconv.Itoa(cb.Port())))
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	conn.Close()

	if err := <-accepted; err != nil {
		t.Errorf("Accept() error: %v", err)
	}
}
