package ipc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nstehr/armada/model"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	msg := NewCommandsMessage(12, "complete", []model.Command{model.Dock(1, 2), model.Thrust(3, 7, 90)})
	env, err := NewEnvelope(TypeCommands, msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteEnvelope(&buf, env); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	if got := binary.LittleEndian.Uint32(buf.Bytes()[:4]); int(got) != buf.Len()-4 {
		t.Errorf("length prefix = %d, payload = %d", got, buf.Len()-4)
	}

	back, err := ReadEnvelope(&buf)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if back.Type != TypeCommands {
		t.Errorf("type = %q", back.Type)
	}
	var got CommandsMessage
	if err := json.Unmarshal(back.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Turn != 12 || len(got.Commands) != 2 || got.Commands[1].String() != "t 3 7 90" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, length := range []uint32{0, maxFrame + 1} {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, length)
		if _, err := ReadEnvelope(&buf); err == nil || !strings.Contains(err.Error(), "invalid message length") {
			t.Errorf("length %d: err = %v", length, err)
		}
	}
}

func TestReadEnvelopeTruncated(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(50))
	buf.WriteString(`{"type":"ack"}`)
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("expected error for truncated payload")
	}
}

func TestEmptyCommandsEncodeAsList(t *testing.T) {
	b, err := json.Marshal(NewCommandsMessage(1, "rejected", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"commands":[]`) {
		t.Errorf("encoded = %s, want an empty list", b)
	}
}
