package alsoft

// output.go - final sample conversion and interleaving (§6, §4.9 step
// 10): convert the device's real-channel float32 buffers to the
// requested PCM sample type, applying round-half-to-even triangular
// dither (two independent uniform values per the standard TPDF
// construction) when the target format is Int16 or Uint8. Int32
// output is scaled and truncated without dither.

import (
	"math"
	"math/bits"
)

// InterleaveAndConvert writes frames samples of channels (each a
// separate float32 slice) into dst as interleaved PCM of sampleType,
// dithering Int16 and Uint8 with the device's dither state; Int32 is
// not dithered.
func InterleaveAndConvert(d *Device, channels [][]float32, frames int, dst []byte) {
	numChans := len(channels)
	switch d.SampleType {
	case SampleFloat32:
		for i := 0; i < frames; i++ {
			for c := 0; c < numChans; c++ {
				writeFloat32LE(dst, (i*numChans+c)*4, channels[c][i])
			}
		}
	case SampleInt16:
		for i := 0; i < frames; i++ {
			for c := 0; c < numChans; c++ {
				v := d.ditherAndClampInt16(channels[c][i])
				writeInt16LE(dst, (i*numChans+c)*2, v)
			}
		}
	case SampleInt32:
		for i := 0; i < frames; i++ {
			for c := 0; c < numChans; c++ {
				v := clampToInt32(channels[c][i])
				writeInt32LE(dst, (i*numChans+c)*4, v)
			}
		}
	case SampleUint8:
		for i := 0; i < frames; i++ {
			for c := 0; c < numChans; c++ {
				v := d.ditherAndClampInt16(channels[c][i])
				dst[i*numChans+c] = byte((v >> 8) + 128)
			}
		}
	}
}

// ditherAndClampInt16 converts a float32 sample to int16, adding
// triangular dither (the sum of two independent uniform noise sources,
// each derived from a simple xorshift-style update of the device's two
// dither seeds) before rounding and clamping.
func (d *Device) ditherAndClampInt16(sample float32) int16 {
	if d.ditherDepth <= 0 {
		return clampToInt16(sample * 32768)
	}
	n1 := d.nextDither(&d.ditherSeedA)
	n2 := d.nextDither(&d.ditherSeedB)
	noise := (n1 + n2 - 1) * d.ditherDepth // triangular, centered, +-1 LSB
	scaled := sample*32768 + noise
	return clampToInt16(roundHalfToEven(scaled))
}

// nextDither advances seed with a xorshift64 step and returns a
// uniform value in [0,1).
func (d *Device) nextDither(seed *uint64) float32 {
	x := *seed
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*seed = x
	return float32(bits.RotateLeft64(x, 0)>>40) / float32(1<<24)
}

func roundHalfToEven(v float32) float32 {
	floor := float32(int64(v))
	if v < 0 && v != floor {
		floor -= 1
	}
	diff := v - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if int64(floor)%2 == 0 {
			return floor
		}
		return floor + 1
	}
}

func clampToInt16(v float32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func clampToInt32(v float32) int32 {
	scaled := v * 2147483647
	if scaled >= 2147483647 {
		return 2147483647
	}
	if scaled < -2147483648 {
		return -2147483648
	}
	return int32(scaled)
}

func writeFloat32LE(dst []byte, off int, v float32) {
	b := math.Float32bits(v)
	dst[off] = byte(b)
	dst[off+1] = byte(b >> 8)
	dst[off+2] = byte(b >> 16)
	dst[off+3] = byte(b >> 24)
}

func writeInt16LE(dst []byte, off int, v int16) {
	dst[off] = byte(v)
	dst[off+1] = byte(v >> 8)
}

func writeInt32LE(dst []byte, off int, v int32) {
	dst[off] = byte(v)
	dst[off+1] = byte(v >> 8)
	dst[off+2] = byte(v >> 16)
	dst[off+3] = byte(v >> 24)
}

