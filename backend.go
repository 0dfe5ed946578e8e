package alsoft

// backend.go - the output backend abstraction (§6, §9). An
// AudioBackend owns the device clock: it calls RenderQuantum whenever
// it needs the next block of samples, then ships the bytes wherever
// it renders to (a live output stream, a file, nothing at all).

// AudioBackend is something that can drive a Context's render loop.
type AudioBackend interface {
	Start(ctx *Context) error
	Stop()
	Close()
}

// bytesPerFrame returns the byte size of one interleaved output frame
// for d's sample type and channel count.
func bytesPerFrame(d *Device) int {
	return d.Channels * bytesPerSample(d.SampleType)
}

func bytesPerSample(t SampleType) int {
	switch t {
	case SampleInt16:
		return 2
	case SampleInt32, SampleFloat32:
		return 4
	case SampleUint8:
		return 1
	default:
		return 2
	}
}
