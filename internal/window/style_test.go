package window

import "testing"

func TestClickThroughStyle(t *testing.T) {
	tests := []struct {
		name  string
		style uint32
	}{
		{"plain", 0},
		{"topmost", WS_EX_TOPMOST | WS_EX_TOOLWINDOW},
		{"layered", WS_EX_LAYERED},
		{"already transparent", WS_EX_LAYERED | WS_EX_TRANSPARENT | WS_EX_TOPMOST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on := EnableClickThrough(tt.style)
			if !IsClickThrough(on) {
				t.Errorf("enable: 0x%08X not click-through", on)
			}
			if EnableClickThrough(on) != on {
				t.Error("enable is not idempotent")
			}
			if on&^clickThroughBits != tt.style&^clickThroughBits {
				t.Errorf("enable touched unrelated bits: 0x%08X", on)
			}

			off := DisableClickThrough(on)
			if IsClickThrough(off) {
				t.Errorf("disable: 0x%08X still click-through", off)
			}
			if DisableClickThrough(off) != off {
				t.Error("disable is not idempotent")
			}
			if off&WS_EX_LAYERED == 0 {
				t.Error("disable must keep the layered bit")
			}
			if off&^WS_EX_LAYERED != tt.style&^clickThroughBits {
				t.Errorf("disable touched unrelated bits: 0x%08X", off)
			}
		})
	}
}

func TestIsClickThroughNeedsBothBits(t *testing.T) {
	if IsClickThrough(WS_EX_TRANSPARENT) {
		t.Error("transparent without layered is not click-through")
	}
	if IsClickThrough(WS_EX_LAYERED) {
		t.Error("layered alone is not click-through")
	}
}

func TestToBGRA(t *testing.T) {
	src := []byte{10, 20, 30, 40, 1, 2, 3, 4}
	dst := make([]byte, len(src))
	toBGRA(dst, src)

	want := []byte{30, 20, 10, 40, 3, 2, 1, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("toBGRA = %v, want %v", dst, want)
		}
	}

	// Mismatched lengths convert the common prefix only.
	short := make([]byte, 4)
	toBGRA(short, src)
	if short[0] != 30 || short[3] != 40 {
		t.Errorf("unexpected prefix conversion %v", short)
	}
}
