package core

import (
	"testing"
	"time"
)

func TestIsKey(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"a", true},
		{"z", true},
		{"7", true},
		{"space", true},
		{"return", true},
		{"f12", true},
		{"f13", false},
		{"enter", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsKey(tc.name); got != tc.expected {
				t.Errorf("IsKey(%q) = %v, expected %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestInputKeyLifecycle(t *testing.T) {
	in := NewInput(100 * time.Millisecond)
	frame := 50 * time.Millisecond

	in.KeyPress("space")
	if !in.KeyPressed("space") || !in.KeyDown("space") {
		t.Fatal("key should be pressed and down on the press frame")
	}

	in.EndFrame(frame)
	if in.KeyPressed("space") {
		t.Error("KeyPressed() should only hold for one frame")
	}
	if !in.KeyDown("space") {
		t.Error("KeyDown() should hold within the hold window")
	}

	// Auto-repeat refreshes the hold without a new press edge.
	in.KeyPress("space")
	if in.KeyPressed("space") {
		t.Error("repeat while down should not report a new press")
	}

	in.EndFrame(frame)
	in.EndFrame(frame)
	in.EndFrame(frame)
	if in.KeyDown("space") {
		t.Error("KeyDown() should expire after the hold window")
	}
	if !in.KeyReleased("space") {
		t.Error("KeyReleased() should be reported on the expiry frame")
	}

	in.EndFrame(frame)
	if in.KeyReleased("space") {
		t.Error("KeyReleased() should only hold for one frame")
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput(0)

	in.MousePress(MouseLeft)
	if !in.MousePressed(MouseLeft) || !in.MouseDown(MouseLeft) {
		t.Fatal("left button should be pressed and down")
	}
	in.EndFrame(time.Millisecond)
	if in.MousePressed(MouseLeft) {
		t.Error("MousePressed() should only hold for one frame")
	}

	in.MouseRelease(MouseLeft)
	if in.MouseDown(MouseLeft) || !in.MouseReleased(MouseLeft) {
		t.Error("left button should be released")
	}

	in.Scroll(1)
	in.Scroll(2)
	if in.Wheel() != 3 {
		t.Errorf("Wheel() = %v, expected 3", in.Wheel())
	}
	in.EndFrame(time.Millisecond)
	if in.Wheel() != 0 {
		t.Errorf("Wheel() after EndFrame = %v, expected 0", in.Wheel())
	}

	// Out of range buttons are ignored.
	in.MousePress(7)
	if in.MouseDown(7) {
		t.Error("MouseDown(7) should be false")
	}
}
