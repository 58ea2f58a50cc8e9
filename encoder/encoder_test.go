package encoder

import (
	"testing"
	"time"
)

// clockwise is one full detent of AB levels starting from 00
var clockwise = [][2]bool{{true, false}, {true, true}, {false, true}, {false, false}}

func turn(d *Decoder, detents int) {
	for i := 0; i < detents; i++ {
		for _, s := range clockwise {
			d.Sample(s[0], s[1])
		}
	}
}

func TestDetents(t *testing.T) {
	d := &Decoder{}
	turn(d, 3)
	if in := d.Take(); in.EncoderDelta != 3 {
		t.Errorf("Expected 3 detents, got %d", in.EncoderDelta)
	}
	if in := d.Take(); !in.Empty() {
		t.Errorf("Expected empty input after Take, got %+v", in)
	}

	// Counter-clockwise
	for i := len(clockwise) - 2; i >= 0; i-- {
		d.Sample(clockwise[i][0], clockwise[i][1])
	}
	d.Sample(false, false)
	if in := d.Take(); in.EncoderDelta != -1 {
		t.Errorf("Expected -1, got %d", in.EncoderDelta)
	}

	d.Reverse = true
	turn(d, 2)
	if in := d.Take(); in.EncoderDelta != -2 {
		t.Errorf("Expected reversed -2, got %d", in.EncoderDelta)
	}
}

func TestPartialDetentCarriesOver(t *testing.T) {
	d := &Decoder{}
	d.Sample(true, false)
	d.Sample(true, true)
	if in := d.Take(); in.EncoderDelta != 0 {
		t.Errorf("Expected no detent yet, got %d", in.EncoderDelta)
	}
	d.Sample(false, true)
	d.Sample(false, false)
	if in := d.Take(); in.EncoderDelta != 1 {
		t.Errorf("Expected carried detent, got %d", in.EncoderDelta)
	}
}

func TestButtonDebounce(t *testing.T) {
	d := &Decoder{}
	t0 := time.Unix(0, 0)

	// Bounce shorter than Debounce is ignored
	d.Button(true, t0)
	d.Button(false, t0.Add(5*time.Millisecond))
	if d.Take().Click {
		t.Error("Bounce should not click")
	}

	d.Button(true, t0.Add(10*time.Millisecond))
	d.Button(true, t0.Add(40*time.Millisecond))
	d.Button(true, t0.Add(500*time.Millisecond))
	if !d.Take().Click {
		t.Error("Expected one click")
	}
	if d.Take().Click {
		t.Error("Holding should not repeat the click")
	}
}
