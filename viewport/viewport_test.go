package viewport

import "testing"

func TestRectCenterAndContains(t *testing.T) {
	r := Rect{X: 100, Y: 50, W: 200, H: 100}
	cx, cy := r.Center()
	if cx != 200 || cy != 100 {
		t.Errorf("expected centre (200, 100), got (%f, %f)", cx, cy)
	}
	if !r.Contains(100, 50) {
		t.Error("expected top-left corner to be inside")
	}
	if r.Contains(300, 100) {
		t.Error("expected right edge to be exclusive")
	}
	lx, ly := r.Local(150, 75)
	if lx != 50 || ly != 25 {
		t.Errorf("expected local (50, 25), got (%f, %f)", lx, ly)
	}
}

func TestListenerRemoval(t *testing.T) {
	v := New(800, 600)
	moves := 0
	removeMove := v.OnPointerMove(func(x, y float64) { moves++ })
	removeResize := v.OnResize(func(w, h float64) {})

	if p, r := v.Listeners(); p != 1 || r != 1 {
		t.Fatalf("expected 1/1 listeners, got %d/%d", p, r)
	}

	v.DispatchPointerMove(10, 10)
	removeMove()
	removeMove() // idempotent
	v.DispatchPointerMove(20, 20)
	removeResize()

	if moves != 1 {
		t.Errorf("expected 1 move delivered, got %d", moves)
	}
	if p, r := v.Listeners(); p != 0 || r != 0 {
		t.Errorf("expected no listeners after removal, got %d/%d", p, r)
	}
	if x, y := v.Pointer(); x != 20 || y != 20 {
		t.Errorf("expected pointer (20, 20), got (%f, %f)", x, y)
	}
}

func TestResizeNotifiesOnChangeOnly(t *testing.T) {
	v := New(800, 600)
	calls := 0
	v.OnResize(func(w, h float64) { calls++ })

	v.Resize(800, 600)
	v.Resize(1024, 768)
	if calls != 1 {
		t.Errorf("expected 1 resize notification, got %d", calls)
	}
	if w, h := v.Size(); w != 1024 || h != 768 {
		t.Errorf("expected size 1024x768, got %fx%f", w, h)
	}
}

func TestListenerCanRemoveItselfDuringDispatch(t *testing.T) {
	v := New(800, 600)
	var remove func()
	remove = v.OnPointerMove(func(x, y float64) { remove() })
	v.DispatchPointerMove(1, 1)
	if p, _ := v.Listeners(); p != 0 {
		t.Errorf("expected listener to be removed, got %d", p)
	}
}

func TestDevicePixelRatioDefaults(t *testing.T) {
	v := New(800, 600)
	if v.DevicePixelRatio() != 1 {
		t.Errorf("expected default DPR 1, got %f", v.DevicePixelRatio())
	}
	v.SetDevicePixelRatio(2)
	v.SetDevicePixelRatio(-1)
	if v.DevicePixelRatio() != 1 {
		t.Errorf("expected invalid DPR to reset to 1, got %f", v.DevicePixelRatio())
	}
}
