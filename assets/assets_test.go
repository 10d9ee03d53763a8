package assets

import (
	"bytes"
	"testing"
)

func TestDefaultBank(t *testing.T) {
	b := Default()

	want := []string{"boost", "dash", "death", "eat", "poison", "shield", "ui"}
	got := b.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}

	for _, name := range want {
		data, ok := b.Effect(name)
		if !ok || !bytes.HasPrefix(data, []byte("RIFF")) {
			t.Errorf("Effect(%q) = %d bytes, %v", name, len(data), ok)
		}
	}

	if !bytes.HasPrefix(b.Music(), []byte("RIFF")) {
		t.Fatal("Music() is not a RIFF payload")
	}

	if Default() != b {
		t.Fatal("Default() should return the same bank")
	}
}

func TestUnknownEffect(t *testing.T) {
	for _, name := range []string{"", "enemy_pickup", "UI", "eat.wav", "missing"} {
		if data, ok := Default().Effect(name); ok || data != nil {
			t.Errorf("Effect(%q) = %d bytes, %v; want nil, false", name, len(data), ok)
		}
	}
}

func TestNewCopiesTable(t *testing.T) {
	table := map[string][]byte{"a": {1}}
	b := New([]byte{9}, table)
	table["b"] = []byte{2}

	if _, ok := b.Effect("b"); ok {
		t.Fatal("bank should not see entries added after New")
	}
	if data, ok := b.Effect("a"); !ok || data[0] != 1 {
		t.Fatal("Effect(a) missing")
	}
}
