package alsoft

// pipeline.go - the render-quantum driver (§4.9): the single function
// a backend calls once per BUFFERSIZE-frame period to produce the next
// block of output bytes. Mirrors OpenAL Soft's renderSamples: mix-count
// parity bracketing, buffer zeroing, update consumption, per-voice
// mixing with stopped-voice reclamation, effect-slot processing in
// dependency order, post-processing, and final interleave.

// RenderQuantum produces BUFFERSIZE frames of output into dst (sized
// for frames*channels*bytesPerSample) from ctx's device state (§4.9
// steps 1-11).
func RenderQuantum(ctx *Context, dst []byte) {
	d := ctx.Device
	frames := BUFFERSIZE

	d.beginQuantum() // step 1: mix-count -> odd

	d.DryBus.Clear() // step 2: zero buses
	d.FOABus.Clear()
	d.RealBus.Clear()
	for _, s := range d.Slots {
		s.ClearWetBuffer()
	}

	if !ctx.HoldUpdates() { // step 3: consume updates unless held
		d.Listener.CalcListenerParams()
	}

	lp := d.Listener.Params()

	for _, v := range d.Voices.Voices() { // step 5: mix voices
		if !v.Playing() {
			continue
		}
		if !ctx.HoldUpdates() {
			if props := v.Update.Consume(); props != nil {
				CalcSourceParams(v, props, lp)
				v.free.Push(props)
			}
		}

		dir := v.params.Direction
		if d.PostMode == PostProcessDecode && d.Layout == LayoutStereo && !v.params.DirectChannels {
			// §4.5: widen azimuth by 1.5x for a plain stereo-pair
			// decode, since two speakers 60 degrees apart otherwise
			// can't reproduce a hard-left/hard-right source.
			scaled := ScaleAzimuthFront(v.params.Azimuth, StereoAzimuthScale)
			dir = AzimuthElevationToDirection(scaled, v.params.Elevation)
		}
		ambiCoeffs := CalcDirectionCoeffs(dir, 0)

		hrtfActive := d.PostMode == PostProcessHRTF && !v.params.DirectChannels &&
			v.queueHead != nil && v.queueHead.Buffer.Format != FormatBFormat2D && v.queueHead.Buffer.Format != FormatBFormat3D
		if hrtfActive {
			ActivateHrtf(v, d.SampleRate)
		} else if v.Hrtf.Active {
			DeactivateHrtf(v)
		}

		more := MixVoice(v, frames, &d.DryBus, &d.RealBus, ambiCoeffs, v.DirectGains[:], hrtfActive)
		if !more {
			sourceID := v.SourceID()
			v.release()
			d.Voices.Release(v)
			d.Events.Post(AsyncEvent{Type: EventSourceStopped, SourceID: sourceID})
		}
	}

	sorted, err := SortEffectSlots(d.Slots) // step 6: process effects in dependency order
	if err == nil {
		for _, s := range sorted {
			s.CalcEffectSlotParams(&d.DryBus, &d.FOABus, &d.RealBus, func(es EffectState) {
				d.Events.Post(AsyncEvent{Type: EventReleaseEffectState, Effect: es})
			})
			if s.Params.State != nil {
				s.Params.State.Process(frames, s.WetBuffer[:s.NumChannels])
			}
		}
	}

	postProcess(d, frames) // steps 7-9: decode/UHJ/HRTF, stabilizer, crossfeed, limiter, delay comp

	InterleaveAndConvert(d, d.RealBus.Channels, frames, dst) // step 10: interleave + convert

	d.endQuantum(frames) // step 11: mix-count -> even, advance sample clock
}

// postProcess converts the ambisonic dry bus to real output channels
// via the configured decode path, then runs whatever optional stages
// the device has configured (§4.9 steps 7-9, §9).
func postProcess(d *Device, frames int) {
	switch d.PostMode {
	case PostProcessUHJ:
		if d.Uhj != nil && len(d.DryBus.Channels) >= 3 {
			if len(d.RealBus.Channels) >= 2 {
				// Add onto RealBus so DirectChannels voices mixed there survive.
				l, r := make([]float32, frames), make([]float32, frames)
				d.Uhj.Process(d.DryBus.Channels[0], d.DryBus.Channels[3], d.DryBus.Channels[1], l, r)
				for i := 0; i < frames; i++ {
					d.RealBus.Channels[0][i] += l[i]
					d.RealBus.Channels[1][i] += r[i]
				}
			}
		}
	case PostProcessHRTF:
		// Per-voice HRTF-spatialized voices already wrote straight into
		// RealBus in MixVoice; the dry bus at this point carries only
		// ambient content that took the ambisonic path instead (B-Format
		// sources, effect-slot wet sends mixed back to dry). Decode that
		// into a scratch bus and add it in rather than overwrite.
		if len(d.RealBus.Channels) >= 1 {
			decoded := NewMixBus(len(d.RealBus.Channels), frames)
			d.Decoder.Process(d.DryBus.Channels, decoded.Channels, frames)
			for c := range d.RealBus.Channels {
				for i := 0; i < frames; i++ {
					d.RealBus.Channels[c][i] += decoded.Channels[c][i]
				}
			}
		}
	default:
		// DirectChannels voices already wrote into RealBus; decode into
		// a scratch bus and add it in rather than overwrite.
		decoded := NewMixBus(len(d.RealBus.Channels), frames)
		d.Decoder.Process(d.DryBus.Channels, decoded.Channels, frames)
		for c := range d.RealBus.Channels {
			for i := 0; i < frames; i++ {
				d.RealBus.Channels[c][i] += decoded.Channels[c][i]
			}
		}
	}

	if d.Stabilizer != nil && len(d.RealBus.Channels) >= 3 {
		d.Stabilizer.Process(d.RealBus.Channels[0], d.RealBus.Channels[1], d.RealBus.Channels[2])
	}
	if d.Crossfeed != nil && len(d.RealBus.Channels) >= 2 {
		d.Crossfeed.Process(d.RealBus.Channels[0], d.RealBus.Channels[1])
	}
	applyChannelDelay(d, frames)
	if d.Limiter != nil {
		d.Limiter.Process(d.RealBus.Channels)
	}
}

// applyChannelDelay compensates for differing real-world speaker
// distances by delaying nearer channels by a fixed sample count
// (§4.9 step 9). Implemented as a simple shift within the quantum;
// cross-quantum history carryover is out of scope for this pass.
func applyChannelDelay(d *Device, frames int) {
	for c, delay := range d.ChannelDelay {
		if delay <= 0 || c >= len(d.RealBus.Channels) {
			continue
		}
		ch := d.RealBus.Channels[c]
		if delay >= frames {
			continue
		}
		copy(ch[delay:], ch[:frames-delay])
		for i := 0; i < delay; i++ {
			ch[i] = 0
		}
	}
}
