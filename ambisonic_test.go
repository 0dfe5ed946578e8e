package alsoft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmbiChannelsForOrder(t *testing.T) {
	assert.Equal(t, 1, AmbiChannelsForOrder(0))
	assert.Equal(t, 4, AmbiChannelsForOrder(1))
	assert.Equal(t, 9, AmbiChannelsForOrder(2))
	assert.Equal(t, 16, AmbiChannelsForOrder(3))
}

func TestCalcDirectionCoeffs_WChannelIsAlwaysUnity(t *testing.T) {
	dirs := []Vec3{{0, 0, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, d := range dirs {
		coeffs := CalcDirectionCoeffs(d, 0)
		assert.Equal(t, float32(1), coeffs[0])
	}
}

func TestCalcDirectionCoeffs_FullSpreadCollapsesToWOnly(t *testing.T) {
	coeffs := CalcDirectionCoeffs(Vec3{0, 0, -1}, 2*math.Pi)
	assert.Equal(t, float32(1), coeffs[0])
	for i := 1; i < MaxAmbiChannels; i++ {
		assert.InDelta(t, 0, coeffs[i], 1e-6)
	}
}

func TestAzimuthElevationRoundTrip(t *testing.T) {
	cases := []struct{ az, el float32 }{
		{0, 0},
		{deg2rad(90), 0},
		{deg2rad(-45), deg2rad(30)},
	}
	for _, c := range cases {
		dir := AzimuthElevationToDirection(c.az, c.el)
		az, el := DirectionToAzimuthElevation(dir)
		assert.InDelta(t, float64(c.az), float64(az), 1e-4)
		assert.InDelta(t, float64(c.el), float64(el), 1e-4)
	}
}

func TestAmbiScale_SN3DRemovesN3DPerDegreeFactor(t *testing.T) {
	// ACN 0 (order 0) has no per-degree factor difference.
	assert.InDelta(t, 1.0, AmbiScale(NormSN3D, 0), 1e-6)
	// ACN 1 (order 1) should be scaled down by 1/sqrt(3).
	assert.InDelta(t, 1.0/math.Sqrt(3), float64(AmbiScale(NormSN3D, 1)), 1e-6)
}

func TestScaleAzimuthFront_WidensModerateAzimuthBy15x(t *testing.T) {
	az := deg2rad(20)
	scaled := ScaleAzimuthFront(az, 1.5)
	assert.InDelta(t, float64(az)*1.5, float64(scaled), 1e-5)
}

func TestScaleAzimuthFront_NeverExceedsPi(t *testing.T) {
	for _, az := range []float32{deg2rad(10), deg2rad(89), deg2rad(100), deg2rad(170), math.Pi} {
		scaled := ScaleAzimuthFront(az, 1.5)
		assert.LessOrEqual(t, absf(scaled), float32(math.Pi)+1e-5)
	}
}

func TestScaleAzimuthFront_PreservesSign(t *testing.T) {
	assert.Greater(t, ScaleAzimuthFront(deg2rad(100), 1.5), float32(0))
	assert.Less(t, ScaleAzimuthFront(deg2rad(-100), 1.5), float32(0))
}

func TestChannelCount_MatchesLayoutSpeakerLists(t *testing.T) {
	assert.Equal(t, 1, ChannelCount(LayoutMono))
	assert.Equal(t, 2, ChannelCount(LayoutStereo))
	assert.Equal(t, 6, ChannelCount(Layout51))
	assert.Equal(t, 8, ChannelCount(Layout71))
}
