package alsoft

// uhj.go - 2-channel UHJ ambisonic encoding (§4.5 supplemented
// feature, §9). Ported from original_source/Alc/uhjfilter.cpp: two
// cascaded all-pass filter banks (squared coefficients, applied as
// one first-order section per coefficient) plus the required one-sample
// delay on the S signal before combining into left/right.

// uhjFilter1CoeffSqr/uhjFilter2CoeffSqr are the squared all-pass
// coefficients from uhjfilter.cpp's Filter1CoeffSqr/Filter2CoeffSqr
// tables, applied via one first-order all-pass section per
// entry (real and imaginary constants of the analytic-signal
// approximation collapsed to real cascaded sections, as the original
// does for its scalar path).
var uhjFilter1CoeffSqr = [4]float32{
	0.6923877263 * 0.6923877263,
	0.9360654322 * 0.9360654322,
	0.9882295226 * 0.9882295226,
	0.9987488452 * 0.9987488452,
}

var uhjFilter2CoeffSqr = [4]float32{
	0.4021921162 * 0.4021921162,
	0.8561710882 * 0.8561710882,
	0.9722909291 * 0.9722909291,
	0.9952323171 * 0.9952323171,
}

// allpassSection is one first-order all-pass stage, y[n] = c*(x[n] -
// y[n-1]) + x[n-1].
type allpassSection struct {
	coeff   float32
	xz, yz  float32
}

func (a *allpassSection) process(x float32) float32 {
	y := a.coeff*(x-a.yz) + a.xz
	a.xz = x
	a.yz = y
	return y
}

// UhjEncoder encodes first-order B-Format (W,X,Y) into 2-channel UHJ
// stereo.
type UhjEncoder struct {
	filter1J [4]allpassSection
	filter2J [4]allpassSection
	sDelay   []float32 // one-sample delay line for S
	delayPos int
}

// NewUhjEncoder creates an encoder with filter1/filter2 coefficients
// initialized from the squared tables.
func NewUhjEncoder() *UhjEncoder {
	e := &UhjEncoder{sDelay: make([]float32, 1)}
	for i := 0; i < 4; i++ {
		e.filter1J[i].coeff = uhjFilter1CoeffSqr[i]
		e.filter2J[i].coeff = uhjFilter2CoeffSqr[i]
	}
	return e
}

// Process encodes frames samples of w, x, y into left, right.
func (e *UhjEncoder) Process(w, x, y []float32, left, right []float32) {
	for i := range w {
		ws := w[i] * 0.981532
		d := x[i]*0.196586 + ws
		s := e.cascadeJ(y[i])

		sDelayed := e.sDelay[e.delayPos]
		e.sDelay[e.delayPos] = s
		e.delayPos = (e.delayPos + 1) % len(e.sDelay)

		left[i] = 0.5 * (d + sDelayed)
		right[i] = 0.5 * (d - sDelayed)
	}
}

// cascadeJ runs y through both all-pass banks in series, approximating
// the 90-degree phase shift the "j" operator applies in the original
// complex-valued derivation.
func (e *UhjEncoder) cascadeJ(y float32) float32 {
	v := y
	for i := range e.filter1J {
		v = e.filter1J[i].process(v)
	}
	for i := range e.filter2J {
		v = e.filter2J[i].process(v)
	}
	return v * 0.851224
}
