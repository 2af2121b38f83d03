package marsproto

import (
	"bytes"
	"testing"

	"github.com/wxmet/mars2grib/dict"
)

func TestClientTaskSendReceiveRoundTrip(t *testing.T) {
	request := dict.NewMapDict(map[string]dict.Value{
		"class":    dict.String("od"),
		"levelist": dict.Int(500),
	})
	environment := dict.NewMapDict(map[string]dict.Value{
		"user": dict.String("tester"),
	})

	task := NewClientTask(request, environment, "127.0.0.1", 9000, "handle-descriptor")

	var buf bytes.Buffer
	if err := task.Send(&buf); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	got, err := ReceiveClientTask(&buf)
	if err != nil {
		t.Fatalf("ReceiveClientTask() error: %v", err)
	}

	if got.CallbackHost != task.CallbackHost || got.CallbackPort != task.CallbackPort {
		t.Errorf("callback address = %s:%d, want %s:%d", got.CallbackHost, got.CallbackPort, task.CallbackHost, task.CallbackPort)
	}
	if got.Nonce != task.Nonce {
		t.Errorf("nonce = %d, want %d", got.Nonce, task.Nonce)
	}
	if got.DataHandle != task.DataHandle {
		t.Errorf("data handle = %q, want %q", got.DataHandle, task.DataHandle)
	}

	class, err := got.Request.GetString("class")
	if err != nil || class != "od" {
		t.Errorf("request[class] = %q, %v, want \"od\"", class, err)
	}
	levelist, err := got.Request.GetInt("levelist")
	if err != nil || levelist != 500 {
		t.Errorf("request[levelist] = %d, %v, want 500", levelist, err)
	}
	user, err := got.Environment.GetString("user")
	if err != nil || user != "tester" {
		t.Errorf("environment[user] = %q, %v, want \"tester\"", user, err)
	}
}

func TestNonceUsesCurrentShiftLayout(t *testing.T) {
	task := NewClientTask(dict.NewMapDict(nil), dict.NewMapDict(nil), "host", 1, "")

	pid := (task.Nonce >> 48) & 0xffff
	if int(pid) == 0 {
		t.Error("nonce pid field should be non-zero under a real process")
	}
}

func TestAcknowledgeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Acknowledge(&buf); err != nil {
		t.Fatalf("Acknowledge() error: %v", err)
	}
	if err := ReceiveAcknowledge(&buf); err != nil {
		t.Errorf("ReceiveAcknowledge() error: %v", err)
	}
}

func TestReceiveAcknowledgeRejectsWrongByte(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte('x')
	if err := ReceiveAcknowledge(&buf); err == nil {
		t.Error("ReceiveAcknowledge() should reject a byte other than 'a'")
	}
}
