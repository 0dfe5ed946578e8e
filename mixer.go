package alsoft

// mixer.go - per-voice, per-quantum mixing (§4.6, §4.9 step 5): pull
// BUFFERSIZE output frames through the voice's resampler (every source
// channel, not just the first), run the direct-path shelf filters per
// channel, then route into the dry ambisonic bus (panned mono, or
// channel-mapped B-Format), straight into real output channels
// (DirectChannels), or through per-voice HRTF convolution, and
// ramp-accumulate the post-send-filtered signal into each aux slot's
// wet bus.

// GainRampSamples is how many samples a ChannelGain ramps from
// Current to Target over, bounding audible step discontinuities to
// one quantum (§4.6).
const GainRampSamples = BUFFERSIZE

// MixVoice advances v by frames samples, writing its resampled,
// filtered, spatialized output into dryBus (ambisonic channels),
// realBus (if v.params.DirectChannels or hrtf), and into each
// configured send's slot wet bus. Returns false once the voice's
// buffer queue is exhausted, signaling the caller to post
// SourceStopped and release the voice back to the pool (§4.9 step 5,
// §7).
func MixVoice(v *Voice, frames int, dryBus *MixBus, realBus *MixBus, ambiCoeffs [MaxAmbiChannels]float32, realChannelGains []ChannelGain, hrtf bool) bool {
	if v.queueHead == nil {
		return false
	}

	resampler := ResamplerFor(v.params.Resampler)
	numCh := v.queueHead.Buffer.Channels
	if numCh < 1 {
		numCh = 1
	}
	scratch := make([][]float32, numCh)
	for c := range scratch {
		scratch[c] = make([]float32, frames)
	}

	more := resampleVoice(v, resampler, scratch)

	for c := 0; c < numCh; c++ {
		z1, z2 := &v.shelfZ[c][0], &v.shelfZ[c][1]
		for i, x := range scratch[c] {
			scratch[c][i] = v.DirectLowShelf.ProcessOne(x, z1, z2)
		}
	}

	isBFormat := v.queueHead.Buffer.Format == FormatBFormat2D || v.queueHead.Buffer.Format == FormatBFormat3D

	switch {
	case v.params.DirectChannels:
		mixDirectChannels(scratch, realBus, realChannelGains, v.params.DryGain)
	case isBFormat:
		mixBFormatChannels(scratch, dryBus, v.DirectGains[:], v.params.DryGain)
	case hrtf && len(realBus.Channels) >= 2:
		MixHrtf(v, scratch[0], realBus.Channels[0], realBus.Channels[1], v.params.DryGain)
	default:
		mixAmbisonic(scratch[0], dryBus, ambiCoeffs, v.DirectGains[:], v.params.DryGain)
	}

	for i := 0; i < MaxSends; i++ {
		send := &v.Sends[i]
		if send.Slot == nil {
			continue
		}
		wetScratch := make([]float32, frames)
		copy(wetScratch, scratch[0])
		send.LowShelf.Process(wetScratch, wetScratch)
		mixAmbisonic(wetScratch, &MixBus{Channels: send.Slot.WetBuffer[:send.Slot.NumChannels]}, ambiCoeffs, send.Gains[:], v.params.WetGain[i])
	}

	return more
}

// resampleVoice fills each channel of out with frames resampled
// source samples, advancing the voice's playback position and walking
// its buffer queue chain as buffers are exhausted. Every source
// channel (not just channel 0) is resampled independently so
// multichannel DirectChannels sources and B-Format X/Y/Z content
// aren't dropped. Returns false when the chain runs out without
// looping.
func resampleVoice(v *Voice, r Resampler, out [][]float32) bool {
	numOut := len(out)
	if numOut == 0 {
		return true
	}
	n := len(out[0])
	more := true

	for i := 0; i < n; i++ {
		item := v.queueHead
		if item == nil {
			zeroColumn(out, i)
			continue
		}
		buf := item.Buffer
		frameCount := buf.FrameCount()
		if frameCount == 0 || v.position >= frameCount {
			if item.Looping {
				v.position = 0
				v.positionFrac = 0
			} else if item.Next != nil {
				v.queueHead = item.Next
				v.position = 0
				v.positionFrac = 0
				item = v.queueHead
				buf = item.Buffer
				frameCount = buf.FrameCount()
			} else {
				zeroColumn(out, i)
				more = false
				continue
			}
		}

		ch := buf.Channels
		idx := v.position * ch
		for c := 0; c < numOut; c++ {
			if c >= ch {
				out[c][i] = 0
				continue
			}
			history := sliceChannel(buf.Data, idx+c, ch, frameCount-v.position)
			sample := history[0]
			if len(history) > 1 {
				sample = r.Sample(padHistory(history), 1, v.positionFrac)
			}
			out[c][i] = sample
		}

		v.positionFrac += uint32(v.params.Step)
		advance := int(v.positionFrac >> FracBits)
		v.positionFrac &= FracMask
		v.position += advance
	}
	return more
}

func zeroColumn(out [][]float32, i int) {
	for c := range out {
		out[c][i] = 0
	}
}

// sliceChannel extracts one channel's samples from an interleaved
// buffer, starting at sample offset idx and stepping by stride, up to
// n frames.
func sliceChannel(data []float32, idx, stride, n int) []float32 {
	if n <= 0 {
		return []float32{0}
	}
	out := make([]float32, 0, n)
	for i := 0; i < n; i++ {
		p := idx + i*stride
		if p >= len(data) {
			break
		}
		out = append(out, data[p])
	}
	if len(out) == 0 {
		out = append(out, 0)
	}
	return out
}

// padHistory pads a short tail so a resampler kernel never reads past
// the slice end, by repeating the last sample.
func padHistory(h []float32) []float32 {
	if len(h) >= 4 {
		return h
	}
	out := make([]float32, 4)
	for i := range out {
		if i < len(h) {
			out[i] = h[i]
		} else {
			out[i] = h[len(h)-1]
		}
	}
	return out
}

// mixAmbisonic accumulates in (frames samples) into bus's channels,
// scaled by coeffs[c]*gain, ramping each channel's current gain
// toward target across the quantum (§4.6).
func mixAmbisonic(in []float32, bus *MixBus, coeffs [MaxAmbiChannels]float32, gains []ChannelGain, targetScale float32) {
	n := len(in)
	for c := 0; c < bus.NumChannels() && c < len(gains); c++ {
		gains[c].Target = coeffs[c] * targetScale
		out := bus.Channels[c]
		step := (gains[c].Target - gains[c].Current) / float32(n)
		g := gains[c].Current
		for i := 0; i < n && i < len(out); i++ {
			out[i] += in[i] * g
			g += step
		}
		gains[c].Current = gains[c].Target
	}
}

// mixDirectChannels accumulates each of in's source channels straight
// into the matching-index realBus channel, 1:1 (no panning matrix),
// used for DirectChannels voices (§4.5): source channel c feeds real
// output channel c, not a single mono signal broadcast to every
// channel.
func mixDirectChannels(in [][]float32, realBus *MixBus, gains []ChannelGain, targetGain float32) {
	for c := 0; c < len(in) && c < realBus.NumChannels() && c < len(gains); c++ {
		src := in[c]
		n := len(src)
		gains[c].Target = targetGain
		out := realBus.Channels[c]
		step := (gains[c].Target - gains[c].Current) / float32(n)
		g := gains[c].Current
		for i := 0; i < n && i < len(out); i++ {
			out[i] += src[i] * g
			g += step
		}
		gains[c].Current = gains[c].Target
	}
}

// bFormatAcnMap maps a B-Format buffer's channel index (W,X,Y,Z) onto
// the dry bus's ACN channel index (0,3,1,2), so periphonic source
// content lands on the same ambisonic channels a panned mono voice
// would drive rather than being collapsed to mono (§4.5, §4.6).
var bFormatAcnMap = [4]int{0, 3, 1, 2}

// mixBFormatChannels accumulates a B-Format source's channels
// directly into their matching ACN channels of bus, ramping each
// channel's own gain toward targetGain - no panning coefficients are
// applied since the source already encodes its own directionality.
func mixBFormatChannels(in [][]float32, bus *MixBus, gains []ChannelGain, targetGain float32) {
	for bc, acn := range bFormatAcnMap {
		if bc >= len(in) || acn >= bus.NumChannels() || acn >= len(gains) {
			continue
		}
		src := in[bc]
		n := len(src)
		gains[acn].Target = targetGain
		out := bus.Channels[acn]
		step := (gains[acn].Target - gains[acn].Current) / float32(n)
		g := gains[acn].Current
		for i := 0; i < n && i < len(out); i++ {
			out[i] += src[i] * g
			g += step
		}
		gains[acn].Current = gains[acn].Target
	}
}
