package alsoft

// ambisonic.go - ACN channel ordering, N3D/SN3D/FuMa normalization
// tables, and direction -> spherical-harmonic coefficient projection
// (§4.5, §8). Also carries the per-layout speaker azimuth/elevation
// maps recovered from original_source/Alc/alu.cpp's ChanMap tables.

import "math"

// AmbiChannelsForOrder returns (order+1)^2, the ACN channel count for
// a fully periphonic ambisonic bus of the given order (§3 invariant).
func AmbiChannelsForOrder(order int) int {
	return (order + 1) * (order + 1)
}

// AmbiNorm selects the coefficient scale convention a decoder preset
// or B-Format stream uses.
type AmbiNorm int

const (
	NormN3D AmbiNorm = iota
	NormSN3D
	NormFuMa
)

// ambiScaleFromN3D holds, for each ACN index 0..15, the SN3D factor
// 1/sqrt(2l+1) that converts an N3D-normalized coefficient of degree l
// to SN3D. AmbiScale reuses it for FuMa and additionally scales W by
// 1/sqrt(2); no other Furse-Malham per-channel weights are applied.
var ambiScaleFromN3D = buildAmbiScales()

func buildAmbiScales() [MaxAmbiChannels]float32 {
	var s [MaxAmbiChannels]float32
	acn := 0
	for l := 0; l <= MaxAmbiOrder; l++ {
		sn3d := float32(1.0 / math.Sqrt(float64(2*l+1)))
		for m := -l; m <= l; m++ {
			s[acn] = sn3d
			acn++
		}
	}
	return s
}

// AmbiScale returns the N3D->norm conversion factor for ACN channel
// acn.
func AmbiScale(norm AmbiNorm, acn int) float32 {
	switch norm {
	case NormSN3D:
		return ambiScaleFromN3D[acn]
	case NormFuMa:
		scale := ambiScaleFromN3D[acn]
		if acn == 0 {
			scale *= 1.0 / float32(math.Sqrt2)
		}
		return scale
	default:
		return 1.0
	}
}

// CalcDirectionCoeffs projects a unit direction vector (X=right,
// Y=up, Z=back; i.e. -Z is "forward") into N3D-normalized ACN
// spherical-harmonic coefficients up to MaxAmbiOrder. spread
// widens the projection toward omnidirectional the way OpenAL Soft's
// panning does for extended sources: 0 is a point source, 2*Pi is
// fully diffuse (coefficients collapse toward the W-only response).
func CalcDirectionCoeffs(dir Vec3, spread float32) [MaxAmbiChannels]float32 {
	var out [MaxAmbiChannels]float32
	x, y, z := dir.X, dir.Y, dir.Z

	out[0] = 1.0 // W
	// Order 1: ACN 1=Y, 2=Z, 3=X
	out[1] = float32(math.Sqrt(3)) * y
	out[2] = float32(math.Sqrt(3)) * z
	out[3] = float32(math.Sqrt(3)) * x
	// Order 2: ACN 4..8, m=-2..2
	out[4] = float32(math.Sqrt(15)) * x * y
	out[5] = float32(math.Sqrt(15)) * y * z
	out[6] = float32(math.Sqrt(5)) / 2 * (3*z*z - 1)
	out[7] = float32(math.Sqrt(15)) * x * z
	out[8] = float32(math.Sqrt(15)) / 2 * (x*x - y*y)
	// Order 3: ACN 9..15, m=-3..3
	out[9] = float32(math.Sqrt(35.0/8.0)) * y * (3*x*x - y*y)
	out[10] = float32(math.Sqrt(105)) * x * y * z
	out[11] = float32(math.Sqrt(21.0/8.0)) * y * (5*z*z - 1)
	out[12] = float32(math.Sqrt(7)) / 2 * z * (5*z*z - 3)
	out[13] = float32(math.Sqrt(21.0/8.0)) * x * (5*z*z - 1)
	out[14] = float32(math.Sqrt(105)) / 2 * z * (x*x - y*y)
	out[15] = float32(math.Sqrt(35.0/8.0)) * x * (x*x - 3*y*y)

	if spread > 0 {
		// Blend each non-W channel toward zero as spread approaches
		// 2*Pi, leaving only the omnidirectional W term - a source
		// that fills the whole sphere has no directional energy left.
		widen := 1.0 - clampf(spread/float32(2*math.Pi), 0, 1)
		for i := 1; i < MaxAmbiChannels; i++ {
			out[i] *= widen
		}
	}
	return out
}

// AzimuthElevationToDirection converts an azimuth (radians, 0 =
// forward/-Z, positive = clockwise toward +X, the right) and elevation
// (radians, positive = up) into a unit direction vector in the same
// X-right/Y-up/Z-back frame CalcDirectionCoeffs expects.
func AzimuthElevationToDirection(azimuth, elevation float32) Vec3 {
	ce := float32(math.Cos(float64(elevation)))
	return Vec3{
		X: float32(math.Sin(float64(azimuth))) * ce,
		Y: float32(math.Sin(float64(elevation))),
		Z: -float32(math.Cos(float64(azimuth))) * ce,
	}
}

// DirectionToAzimuthElevation is the inverse of
// AzimuthElevationToDirection for a unit vector.
func DirectionToAzimuthElevation(dir Vec3) (azimuth, elevation float32) {
	elevation = float32(math.Asin(float64(clampf(dir.Y, -1, 1))))
	azimuth = float32(math.Atan2(float64(dir.X), float64(-dir.Z)))
	return
}

// ScaleAzimuthFront widens azimuth by scale for the stereo-pair render
// mode (§4.5: "optionally scaling azimuth by 1.5x ... to widen the
// effective angular range"), while keeping the result within [-Pi,Pi].
func ScaleAzimuthFront(azimuth, scale float32) float32 {
	if absf(azimuth) <= math.Pi/2 {
		return clampf(azimuth*scale, -math.Pi/2, math.Pi/2)
	}
	frac := (math.Pi - absf(azimuth)) / (math.Pi / 2)
	widened := math.Pi/2 + frac*(math.Pi/2)
	if azimuth < 0 {
		widened = -widened
	}
	return widened
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// SpeakerLabel names a real output channel by role, used both for
// default layout maps and for ambdec preset speaker-name matching
// (LF/RF/CE/LS/RS/LB/RB/CB/AUX%u, §4.7).
type SpeakerLabel int

const (
	SpeakerFrontLeft SpeakerLabel = iota
	SpeakerFrontRight
	SpeakerFrontCenter
	SpeakerLFE
	SpeakerBackLeft
	SpeakerBackRight
	SpeakerBackCenter
	SpeakerSideLeft
	SpeakerSideRight
)

// ChannelLayout enumerates the output speaker layouts named in §6.
type ChannelLayout int

const (
	LayoutMono ChannelLayout = iota
	LayoutStereo
	LayoutQuad
	Layout51
	Layout51Rear
	Layout61
	Layout71
	LayoutAmbi3D
)

// LayoutChannel pairs a speaker with its default azimuth/elevation for
// ambisonic decoding (radians).
type LayoutChannel struct {
	Speaker   SpeakerLabel
	Azimuth   float32
	Elevation float32
}

func deg2rad(d float32) float32 { return d * math.Pi / 180 }

// DefaultLayoutChannels returns the default channel map for a speaker
// layout, ordered per §6's channel table, grounded on alu.cpp's
// MonoMap/RearMap/QuadMap/X51Map/X61Map/X71Map tables.
func DefaultLayoutChannels(layout ChannelLayout) []LayoutChannel {
	switch layout {
	case LayoutMono:
		return []LayoutChannel{{SpeakerFrontCenter, 0, 0}}
	case LayoutStereo:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-30), 0},
			{SpeakerFrontRight, deg2rad(30), 0},
		}
	case LayoutQuad:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-45), 0},
			{SpeakerFrontRight, deg2rad(45), 0},
			{SpeakerBackLeft, deg2rad(-135), 0},
			{SpeakerBackRight, deg2rad(135), 0},
		}
	case Layout51:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-30), 0},
			{SpeakerFrontRight, deg2rad(30), 0},
			{SpeakerFrontCenter, 0, 0},
			{SpeakerLFE, 0, 0},
			{SpeakerSideLeft, deg2rad(-110), 0},
			{SpeakerSideRight, deg2rad(110), 0},
		}
	case Layout51Rear:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-30), 0},
			{SpeakerFrontRight, deg2rad(30), 0},
			{SpeakerFrontCenter, 0, 0},
			{SpeakerLFE, 0, 0},
			{SpeakerBackLeft, deg2rad(-150), 0},
			{SpeakerBackRight, deg2rad(150), 0},
		}
	case Layout61:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-30), 0},
			{SpeakerFrontRight, deg2rad(30), 0},
			{SpeakerFrontCenter, 0, 0},
			{SpeakerLFE, 0, 0},
			{SpeakerBackCenter, deg2rad(180), 0},
			{SpeakerSideLeft, deg2rad(-90), 0},
			{SpeakerSideRight, deg2rad(90), 0},
		}
	case Layout71:
		return []LayoutChannel{
			{SpeakerFrontLeft, deg2rad(-30), 0},
			{SpeakerFrontRight, deg2rad(30), 0},
			{SpeakerFrontCenter, 0, 0},
			{SpeakerLFE, 0, 0},
			{SpeakerBackLeft, deg2rad(-150), 0},
			{SpeakerBackRight, deg2rad(150), 0},
			{SpeakerSideLeft, deg2rad(-90), 0},
			{SpeakerSideRight, deg2rad(90), 0},
		}
	default:
		return nil
	}
}

// ChannelCount returns the number of real output channels for layout
// (0 for Ambi3D, whose channel count instead depends on ambisonic
// order - see AmbiChannelsForOrder).
func ChannelCount(layout ChannelLayout) int {
	return len(DefaultLayoutChannels(layout))
}
