package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionUp)

	if !f.Has(ActionLeft) || !f.Has(ActionUp) {
		t.Fatal("frame should report both actions")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not report unset action")
	}
	if len(f.Order) != 2 || f.Order[0] != ActionLeft || f.Order[1] != ActionUp {
		t.Errorf("Order = %v, expected [Left Up]", f.Order)
	}

	f.Clear()
	if f.Has(ActionLeft) || len(f.Order) != 0 {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionPause) || len(clone.Order) != 1 {
		t.Error("clone should be independent of the original")
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Bright_Green "); !ok || c != ColorBrightGreen {
		t.Errorf("ParseColor(bright_green) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("ultraviolet"); ok {
		t.Error("unknown colour should not parse")
	}
}
