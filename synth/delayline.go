package synth

// delayLineSize is the fixed Karplus-Strong buffer length in samples.
const delayLineSize = 200

// delayLine is a fixed-capacity recirculating buffer with a variable
// active length. Each step averages two neighbouring taps and scales
// by damping, so energy strictly decays while damping < 1.
type delayLine struct {
	buf     [delayLineSize]float64
	length  int
	pos     int
	damping float64
}

// seed fills the whole buffer with scaled noise and rewinds the read
// position.
func (d *delayLine) seed(n *noise, scale float64) {
	for i := range d.buf {
		d.buf[i] = n.next() * scale
	}
	d.pos = 0
}

// setLength changes the active loop length. Values outside
// (1, delayLineSize] are ignored.
func (d *delayLine) setLength(n int) {
	if n < 2 || n > delayLineSize {
		return
	}
	d.length = n
	if d.pos >= n {
		d.pos %= n
	}
}

// step returns the current tap, then writes back the damped average of
// it and the following tap.
func (d *delayLine) step() float64 {
	out := d.buf[d.pos]
	next := d.pos + 1
	if next >= d.length {
		next = 0
	}
	d.buf[d.pos] = (out + d.buf[next]) * 0.5 * d.damping
	d.pos = next
	return out
}

func (d *delayLine) reset() {
	d.buf = [delayLineSize]float64{}
	d.length = delayLineSize
	d.pos = 0
	d.damping = 0
}
