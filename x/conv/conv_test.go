package conv

import "testing"

func TestHex8(t *testing.T) {
	for _, c := range []struct {
		in   uint8
		want string
	}{
		{0x00, "0x00"},
		{0x59, "0x59"},
		{0xfc, "0xfc"},
	} {
		if got := Hex8(c.in); got != c.want {
			t.Fatalf("Hex8(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHexBytes(t *testing.T) {
	if got, want := HexBytes([]byte{0xc0, 0xff, 0xff, 0x03}), "c0 ff ff 03"; got != want {
		t.Fatalf("HexBytes = %q, want %q", got, want)
	}
	if got := HexBytes(nil); got != "" {
		t.Fatalf("HexBytes(nil) = %q, want empty", got)
	}
}

func TestItoa(t *testing.T) {
	for _, c := range []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{20, "20"},
		{-128, "-128"},
	} {
		if got := Itoa(c.in); got != c.want {
			t.Fatalf("Itoa(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
