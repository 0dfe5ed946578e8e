package alsoft

// listener.go - the listener's published properties and the derived,
// mixer-side parameter snapshot (§3, §4.5). CalcListenerParams mirrors
// original_source/Alc/alu.cpp's function of the same name: build and
// normalize an orthonormal at/up/right basis, bake translation into
// the world-to-listener matrix, and transform the listener's velocity
// into its own frame.

import "sync/atomic"

// DistanceModel selects how source gain falls off with distance
// (§4.5).
type DistanceModel int

const (
	DistanceInverse DistanceModel = iota
	DistanceInverseClamped
	DistanceLinear
	DistanceLinearClamped
	DistanceExponent
	DistanceExponentClamped
	DistanceDisable
)

// ListenerProps is the immutable snapshot of API-side listener
// parameters, swapped in via Update[ListenerProps].
type ListenerProps struct {
	Position Vec3
	Velocity Vec3
	OrientAt Vec3
	OrientUp Vec3

	Gain                 float32
	MetersPerUnit        float32
	DopplerFactor        float32
	SpeedOfSound         float32
	ReverbSpeedOfSound   float32
	DistanceModel        DistanceModel
	SourceDistanceModel  bool // true: a source's own model overrides this one
}

// DefaultListenerProps returns the engine's default listener state:
// origin, facing -Z, Y up, unit gain.
func DefaultListenerProps() ListenerProps {
	return ListenerProps{
		OrientAt:           Vec3{0, 0, -1},
		OrientUp:           Vec3{0, 1, 0},
		Gain:               1.0,
		MetersPerUnit:      1.0,
		DopplerFactor:      1.0,
		SpeedOfSound:       DefaultSpeedOfSound,
		ReverbSpeedOfSound: DefaultSpeedOfSound,
	}
}

// ListenerParams is the mixer-side derived state computed once per
// quantum from the latest ListenerProps (§3 invariants: at/up
// orthonormalized, right = normalize(at x up)).
type ListenerParams struct {
	Matrix   Mat4
	Velocity Vec3
	Gain     float32

	MetersPerUnit       float32
	DopplerFactor       float32
	SpeedOfSound        float32
	ReverbSpeedOfSound  float32
	DistanceModel       DistanceModel
	SourceDistanceModel bool
}

// Listener owns the published props slot and the mixer-visible
// derived parameters.
type Listener struct {
	Update Update[ListenerProps]
	free   FreeList[ListenerProps]

	params atomic.Pointer[ListenerParams]
}

// NewListener creates a listener with default parameters already
// computed, so a device can render before any API-side publish.
func NewListener() *Listener {
	l := &Listener{}
	p := DefaultListenerProps()
	l.params.Store(calcListenerParams(&p))
	return l
}

// Params returns the most recently computed listener parameters.
func (l *Listener) Params() *ListenerParams {
	return l.params.Load()
}

// CalcListenerParams consumes a pending ListenerProps update (if any)
// and recomputes ListenerParams. Returns true if an update was
// consumed (mirrors alu.cpp's bool return, used by the caller to know
// whether dependent voice params must be force-recalculated).
func (l *Listener) CalcListenerParams() bool {
	props := l.Update.Consume()
	if props == nil {
		return false
	}
	l.params.Store(calcListenerParams(props))
	l.free.Push(props)
	return true
}

func calcListenerParams(props *ListenerProps) *ListenerParams {
	n, _ := props.OrientAt.Normalize()
	v, _ := props.OrientUp.Normalize()
	u, _ := n.Cross(v).Normalize()
	// Re-orthonormalize v against n and u so that an up vector that
	// wasn't exactly perpendicular to at doesn't leak into the basis.
	v, _ = u.Cross(n).Normalize()

	m := Mat4{}
	m.M[0] = [4]float32{u.X, v.X, -n.X, 0}
	m.M[1] = [4]float32{u.Y, v.Y, -n.Y, 0}
	m.M[2] = [4]float32{u.Z, v.Z, -n.Z, 0}
	m.M[3] = [4]float32{0, 0, 0, 1}

	p := m.TransformPoint(props.Position)
	// Bake -position (in listener space) into the translation column,
	// matching alu.cpp's "setRow(3, -P[0], -P[1], -P[2], 1.0f)" which
	// in this row-major encoding is the translation column.
	m.M[0][3] = -p.X
	m.M[1][3] = -p.Y
	m.M[2][3] = -p.Z

	vel := m.TransformDirection(props.Velocity)

	sos := props.SpeedOfSound
	reverbSoS := props.ReverbSpeedOfSound
	if LoadConfig().OverrideReverbSpeedOfSound {
		reverbSoS = DefaultSpeedOfSound
	}

	return &ListenerParams{
		Matrix:              m,
		Velocity:            vel,
		Gain:                props.Gain,
		MetersPerUnit:       props.MetersPerUnit,
		DopplerFactor:       props.DopplerFactor,
		SpeedOfSound:        sos,
		ReverbSpeedOfSound:  reverbSoS,
		DistanceModel:       props.DistanceModel,
		SourceDistanceModel: props.SourceDistanceModel,
	}
}
