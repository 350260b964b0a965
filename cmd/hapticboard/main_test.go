//go:build !(rp2040 || rp2350)

package main

import (
	"reflect"
	"testing"

	"hapticcode-go/errcode"
)

func TestParsePins(t *testing.T) {
	got, err := parsePins("1, 5,20")
	if err != nil || !reflect.DeepEqual(got, []int{1, 5, 20}) {
		t.Fatalf("parsePins = %v, %v", got, err)
	}
	if got, err := parsePins(""); err != nil || got != nil {
		t.Fatalf("empty = %v, %v", got, err)
	}
	if _, err := parsePins("1,x"); errcode.Of(err) != errcode.InvalidPin {
		t.Fatalf("err=%v", err)
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-sim", "-chip", "7", "-hz", "10000", "-pins", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if !o.sim || o.chip != 7 || o.linux.SPIHz != 10000 || o.pins != "3" {
		t.Fatalf("%+v", o)
	}
	if o.linux.Latch != "GPIO5" {
		t.Fatalf("latch default %q", o.linux.Latch)
	}
	if o.quiet {
		t.Fatal("quiet by default")
	}
	if o, err := parseFlags([]string{"-quiet"}); err != nil || !o.quiet {
		t.Fatalf("-quiet: %+v, %v", o, err)
	}
	if _, err := parseFlags([]string{"stray"}); err == nil {
		t.Fatal("stray argument accepted")
	}
}

func TestParseFlags_ChipIDRange(t *testing.T) {
	for _, c := range []struct {
		arg string
		ok  bool
	}{
		{"0", true},
		{"15", true},
		{"16", false},
		{"261", false},
	} {
		_, err := parseFlags([]string{"-sim", "-chip", c.arg})
		if (err == nil) != c.ok {
			t.Fatalf("-chip %s: err=%v", c.arg, err)
		}
		if !c.ok && errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("-chip %s: code %s", c.arg, errcode.Of(err))
		}
	}
}

func TestSquareWave(t *testing.T) {
	w := squareWave(32)
	if w[0] != 127 || w[8] != -128 || w[16] != 127 {
		t.Fatalf("wave %v", w)
	}
}
