package serial_test

import (
	"testing"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/strategies/serial"
)

func TestSerialRegistered(t *testing.T) {
	s, err := registry.Create(serial.ID, registry.Options{})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", serial.ID, err)
	}
	if s.ID() != serial.ID {
		t.Errorf("ID() = %q, expected %q", s.ID(), serial.ID)
	}
}

func TestSerialMatchesCompute(t *testing.T) {
	expected := mandel.Standard()
	want := mandel.Compute(expected)

	f := mandel.Standard()
	got := serial.Strategy{}.Evaluate(f)

	if got != want {
		t.Errorf("Evaluate() = %d, expected %d", got, want)
	}
	if !f.Equal(expected) {
		t.Error("serial field differs from mandel.Compute")
	}
}
