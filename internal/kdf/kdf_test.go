package kdf

import (
	"bytes"
	"errors"
	"testing"
)

// testParams keeps derivation cheap in tests.
var testParams = Params{Time: 1, MemoryKiB: 64, Threads: 4}

func TestDerive_Deterministic(t *testing.T) {
	first, err := Derive([]byte("correct horse battery staple"), testParams)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	second, err := Derive([]byte("correct horse battery staple"), testParams)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if !bytes.Equal(first.Key, second.Key) {
		t.Error("same password produced different keys")
	}
	if !bytes.Equal(first.Seed, second.Seed) {
		t.Error("same password produced different seeds")
	}
}

func TestDerive_OutputSizes(t *testing.T) {
	m, err := Derive([]byte("pw"), testParams)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(m.Key) != KeySize {
		t.Errorf("key length = %d, want %d", len(m.Key), KeySize)
	}
	if len(m.Seed) != SeedSize {
		t.Errorf("seed length = %d, want %d", len(m.Seed), SeedSize)
	}
}

func TestDerive_KeySeedIndependent(t *testing.T) {
	m, err := Derive([]byte("pw"), testParams)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if bytes.Equal(m.Key, m.Seed) {
		t.Error("key and seed are identical; domain separation is broken")
	}
}

func TestDerive_DifferentPasswords(t *testing.T) {
	a, err := Derive([]byte("password-one"), testParams)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Derive([]byte("password-two"), testParams)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a.Key, b.Key) {
		t.Error("different passwords produced the same key")
	}
	if bytes.Equal(a.Seed, b.Seed) {
		t.Error("different passwords produced the same seed")
	}
}

func TestDerive_ParamsChangeOutput(t *testing.T) {
	base, err := Derive([]byte("pw"), testParams)
	if err != nil {
		t.Fatal(err)
	}

	harder := testParams
	harder.Time = 2
	other, err := Derive([]byte("pw"), harder)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(base.Key, other.Key) {
		t.Error("changing the time cost did not change the key")
	}
}

func TestDerive_EmptyPassword(t *testing.T) {
	_, err := Derive(nil, testParams)
	if !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestDerive_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero time", Params{Time: 0, MemoryKiB: 64, Threads: 4}},
		{"zero memory", Params{Time: 1, MemoryKiB: 0, Threads: 4}},
		{"zero threads", Params{Time: 1, MemoryKiB: 64, Threads: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Derive([]byte("pw"), tt.params); err == nil {
				t.Error("expected error for invalid parameters")
			}
		})
	}
}

func BenchmarkDerive_Default(b *testing.B) {
	password := []byte("correct horse battery staple")
	p := DefaultParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Derive(password, p)
	}
}
