package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListener_HasDefaultParamsBeforeAnyPublish(t *testing.T) {
	l := NewListener()
	p := l.Params()
	require.NotNil(t, p)
	assert.Equal(t, float32(1), p.Gain)
	assert.Equal(t, DefaultSpeedOfSound, p.SpeedOfSound)
}

func TestListener_CalcListenerParams_ReturnsFalseWithoutUpdate(t *testing.T) {
	l := NewListener()
	assert.False(t, l.CalcListenerParams())
}

func TestListener_CalcListenerParams_OrthonormalizesBasis(t *testing.T) {
	l := NewListener()
	props := DefaultListenerProps()
	// A deliberately non-orthogonal up vector.
	props.OrientAt = Vec3{0, 0, -1}
	props.OrientUp = Vec3{0.2, 1, 0}
	l.Update.Publish(&props)

	require.True(t, l.CalcListenerParams())
	p := l.Params()

	right := Vec3{p.Matrix.M[0][0], p.Matrix.M[1][0], p.Matrix.M[2][0]}
	up := Vec3{p.Matrix.M[0][1], p.Matrix.M[1][1], p.Matrix.M[2][1]}
	assert.InDelta(t, 0, right.Dot(up), 1e-5, "right and up must be orthogonal after normalization")
	_, rightLen := right.Normalize()
	assert.InDelta(t, 1, rightLen, 1e-5)
}

func TestListener_TranslationBakesInNegatedPosition(t *testing.T) {
	l := NewListener()
	props := DefaultListenerProps()
	props.Position = Vec3{5, 0, 0}
	l.Update.Publish(&props)
	l.CalcListenerParams()

	p := l.Params()
	origin := p.Matrix.TransformPoint(Vec3{5, 0, 0})
	assert.InDelta(t, 0, origin.X, 1e-4)
	assert.InDelta(t, 0, origin.Y, 1e-4)
	assert.InDelta(t, 0, origin.Z, 1e-4)
}
