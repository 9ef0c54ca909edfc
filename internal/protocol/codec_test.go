package protocol

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestLineReaderSkipsEmptyLines(t *testing.T) {
	r := NewLineReader(strings.NewReader("\n\n{\"type\":\"hello\"}\n"))
	frame, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if frame != `{"type":"hello"}` {
		t.Fatalf("frame = %q", frame)
	}
}

func TestLineReaderEOF(t *testing.T) {
	r := NewLineReader(strings.NewReader(""))
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestPeekTypeRejectsMissingType(t *testing.T) {
	if _, err := PeekType(`{"seq":1}`); err == nil {
		t.Fatal("expected an error for a missing type field")
	}
}

func TestPeekTypeExtractsSeq(t *testing.T) {
	env, err := PeekType(`{"type":"command","seq":7}`)
	if err != nil {
		t.Fatalf("PeekType: %v", err)
	}
	if env.Type != "command" || env.Seq != 7 {
		t.Fatalf("env = %+v", env)
	}
}

func TestLineWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)
	if err := w.WriteMessage(AckMsg{Type: "ack", Seq: 1, Status: "ok"}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("expected a trailing newline")
	}
	if !strings.Contains(buf.String(), `"status":"ok"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestKnownErrorCodes(t *testing.T) {
	for _, c := range []string{
		ErrHandshakeRequired, ErrProtocolMismatch, ErrNotController,
		ErrControllerActive, ErrInvalidCommand, ErrInvalidPlace,
		ErrHoldUnavailable, ErrSnapshotRequired, ErrBackpressure,
	} {
		if !IsKnownCode(c) {
			t.Errorf("expected %q to be a known code", c)
		}
	}
	if IsKnownCode("not_a_real_code") {
		t.Fatal("unknown code reported as known")
	}
}
