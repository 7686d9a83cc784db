// internal/writer/modbus/client_test.go
package modbus

import "testing"

func TestPackRegistersBigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x0102, 0xA0FF})
	want := []byte{0x01, 0x02, 0xA0, 0xFF}

	if len(got) != len(want) {
		t.Fatalf("len: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got=%#x want=%#x", i, got[i], want[i])
		}
	}
}

func TestNewEndpointClientRequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestWriteRegistersEmptyIsNoop(t *testing.T) {
	c, err := NewEndpointClient(Config{Endpoint: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer c.Close()

	if err := c.WriteRegisters(1, 0, nil); err != nil {
		t.Fatalf("empty write should not dial: %v", err)
	}
}
