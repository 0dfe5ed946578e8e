package alsoft

// params.go - the per-voice parameter calculator (§4.5), the hardest
// subcomponent: turns a VoiceProps snapshot plus the current listener
// parameters into ramp targets the mixer steps toward over one
// quantum. Grounded on original_source/Alc/alu.cpp's
// CalcAttnSourceParams/CalcNonAttnSourceParams/CalcPanningAndFilters.

import "math"

// VoiceParams is the mixer-side output of one CalcSourceParams pass:
// everything the mixer needs to render this voice for the coming
// quantum, without touching VoiceProps again until the next update.
type VoiceParams struct {
	Pitch float32 // post-Doppler pitch multiplier
	Step  int32   // Pitch converted to a 16.16 fixed-point resample step
	Resampler SincKernel

	DryGain   float32
	DryGainHF float32
	DryGainLF float32

	WetGain   [MaxSends]float32
	WetGainHF [MaxSends]float32
	WetGainLF [MaxSends]float32

	Direction Vec3 // unit direction from listener to source, listener space
	Azimuth   float32
	Elevation float32
	Spread    float32

	DirectChannels bool // true: route to real output channels 1:1, no panning
}

// CalcSourceParams recomputes a Voice's VoiceParams from props and the
// listener's current parameters, storing the result on the voice
// (§4.5, §4.9 step 5). Positions and distances are used in the
// engine's own units; ListenerParams.MetersPerUnit is not applied.
func CalcSourceParams(v *Voice, props *VoiceProps, lp *ListenerParams) {
	cfg := LoadConfig()

	distModel := lp.DistanceModel
	if props.UseSourceDistanceModel {
		distModel = props.DistanceModel
	}

	// A source with Spatialize set to SpatializeOff plays straight
	// through to the matching output channels; SpatializeOn and
	// SpatializeAuto sources are panned whatever their buffer format
	// (§4.5, Non-goals carve-out for DirectChannels sources in the
	// original design).
	directChannels := props.Spatialize == SpatializeOff

	var p VoiceParams
	p.Resampler = props.Resampler
	p.DirectChannels = directChannels

	if directChannels {
		calcNonAttnParams(&p, props, lp)
	} else {
		calcAttnParams(&p, props, lp, distModel, cfg)
	}

	calcPitchStep(&p, props, lp)

	v.params = p
}

// calcNonAttnParams handles sources with no distance attenuation;
// CalcSourceParams uses it only for direct-channel (SpatializeOff)
// playback (mirrors CalcNonAttnSourceParams).
func calcNonAttnParams(p *VoiceParams, props *VoiceProps, lp *ListenerParams) {
	gain := clampf(props.Gain, props.MinGain, props.MaxGain) * lp.Gain
	p.DryGain = gain
	p.DryGainHF = 1
	p.DryGainLF = 1
	if !props.DryGainHFAuto {
		p.DryGainHF = props.Direct.GainHF
	}
	for i := 0; i < MaxSends; i++ {
		if props.Send[i].Slot == nil {
			continue
		}
		p.WetGain[i] = clampf(props.Gain, props.MinGain, props.MaxGain) * lp.Gain
		p.WetGainHF[i] = 1
		p.WetGainLF[i] = 1
	}
	p.Direction = Vec3{0, 0, -1}
}

// calcAttnParams is the spatialized path: distance attenuation, cone
// attenuation, air absorption, and per-send room decay (mirrors
// CalcAttnSourceParams).
func calcAttnParams(p *VoiceParams, props *VoiceProps, lp *ListenerParams, distModel DistanceModel, cfg EngineConfig) {
	pos := props.Position
	pos.Z *= cfg.ZScale
	if !props.HeadRelative {
		pos = lp.Matrix.TransformPoint(pos)
	} else {
		pos = lp.Matrix.TransformDirection(pos)
	}

	dir, dist := pos.Normalize()
	if dist < 1e-6 {
		// Coincident with the listener: no direction, no falloff. Keep
		// gain at the source's unattenuated level rather than dividing
		// by zero (§8 edge case: distance-zero must not produce NaN).
		dir = Vec3{0, 0, -1}
	}
	p.Direction = dir
	p.Azimuth, p.Elevation = DirectionToAzimuthElevation(dir)

	clampedModel := distModel
	attn := distanceAttenuation(clampedModel, dist, props.RefDistance, props.MaxDistance, props.RolloffFactor)

	// Cone attenuation, only meaningful if the source has a facing
	// direction (§4.5).
	coneGain, coneGainHF := float32(1), float32(1)
	if props.Direction != (Vec3{}) && dist > 1e-6 {
		srcDir, _ := props.Direction.Normalize()
		toListener := dir.Scale(-1)
		cosAngle := clampf(srcDir.Dot(toListener), -1, 1)
		angle := float32(math.Acos(float64(cosAngle)))
		angle *= cfg.ConeScale
		inner := deg2rad(props.InnerAngle * 0.5)
		outer := deg2rad(props.OuterAngle * 0.5)
		switch {
		case angle <= inner:
			coneGain, coneGainHF = 1, 1
		case angle >= outer:
			coneGain, coneGainHF = props.OuterGain, props.OuterGainHF
		default:
			t := (angle - inner) / maxf(outer-inner, 1e-6)
			coneGain = lerp(1, props.OuterGain, t)
			coneGainHF = lerp(1, props.OuterGainHF, t)
		}
	}

	gain := clampf(props.Gain, props.MinGain, props.MaxGain) * lp.Gain * attn * coneGain
	gainHF := coneGainHF

	// Air absorption: HF rolls off exponentially with distance beyond
	// the reference distance, scaled by AirAbsorptionFactor (§4.5).
	if props.AirAbsorptionFactor > 0 && dist > props.RefDistance {
		absorbDist := dist - props.RefDistance
		airAbsorbGainHF := powf(AirAbsorbGainHF, props.AirAbsorptionFactor*absorbDist)
		gainHF *= airAbsorbGainHF
	}

	p.DryGain = clampf(gain, 0, GainMixMax)
	p.DryGainHF = gainHF
	p.DryGainLF = 1
	if !props.DryGainHFAuto {
		p.DryGainHF = props.Direct.GainHF
	}

	for i := 0; i < MaxSends; i++ {
		send := &props.Send[i]
		if send.Slot == nil {
			continue
		}
		wetGain := clampf(props.Gain, props.MinGain, props.MaxGain) * lp.Gain * coneGain
		wetGainHF := float32(1)
		wetGainLF := float32(1)

		roomRolloff := send.Slot.Params.RoomRolloff + props.RoomRolloffFactor
		wetAttn := distanceAttenuation(clampedModel, dist, props.RefDistance, props.MaxDistance, roomRolloff)
		wetGain *= wetAttn

		// Reverb decay-distance attenuation: a source further than the
		// reverb's reference distance loses wet gain (and, per the original
		// source's quirk, is gated on WetGainAuto rather than
		// WetGainHFAuto - preserved here rather than "fixed", since
		// it's the documented, shipped behavior being modeled (§9
		// design note, SPEC_FULL.md supplemented features).
		if props.WetGainAuto && send.Slot.Params.DecayTime > 0 {
			dist0 := referenceDistance(lp, send.Slot)
			decayDist := send.Slot.Params.DecayTime * lp.ReverbSpeedOfSound
			if decayDist > 0 {
				dryGain := powf(ReverbDecayGain, (dist-dist0)/decayDist)
				wetGain *= clampf(dryGain, 0, 1)
			}
		}
		if props.WetGainHFAuto {
			wetGainHF = airAbsorptionWetHF(props, dist, send.Slot)
		} else {
			wetGainHF = send.GainHF
		}
		wetGainLF = send.GainLF

		p.WetGain[i] = clampf(wetGain, 0, GainMixMax)
		p.WetGainHF[i] = wetGainHF
		p.WetGainLF[i] = wetGainLF
	}
}

// referenceDistance gives the distance at which reverb decay
// attenuation starts. It returns 1 for every slot; neither the
// source's RefDistance nor the listener's MetersPerUnit is consulted.
func referenceDistance(lp *ListenerParams, slot *AuxEffectSlot) float32 {
	return 1
}

func airAbsorptionWetHF(props *VoiceProps, dist float32, slot *AuxEffectSlot) float32 {
	if props.AirAbsorptionFactor <= 0 || dist <= props.RefDistance {
		return 1
	}
	absorbDist := dist - props.RefDistance
	gainHF := powf(slot.Params.AirAbsorptionGainHF, props.AirAbsorptionFactor*absorbDist)
	return gainHF
}

// distanceAttenuation implements the seven distance models of §4.5,
// exactly mirroring alu.cpp's switch over DistanceModel.
func distanceAttenuation(model DistanceModel, dist, refDist, maxDist, rolloff float32) float32 {
	switch model {
	case DistanceInverseClamped:
		dist = clampf(dist, refDist, maxDist)
		if maxDist < refDist {
			break
		}
		fallthrough
	case DistanceInverse:
		if refDist == 0 {
			return 1
		}
		denom := refDist + rolloff*(dist-refDist)
		if denom <= 0 {
			return 1
		}
		return refDist / denom

	case DistanceLinearClamped:
		dist = clampf(dist, refDist, maxDist)
		if maxDist < refDist {
			break
		}
		fallthrough
	case DistanceLinear:
		denom := maxDist - refDist
		if denom <= 0 {
			return 1
		}
		g := 1 - rolloff*(dist-refDist)/denom
		return clampf(g, 0, 1)

	case DistanceExponentClamped:
		dist = clampf(dist, refDist, maxDist)
		if maxDist < refDist {
			break
		}
		fallthrough
	case DistanceExponent:
		if refDist == 0 || dist == 0 {
			return 1
		}
		return powf(dist/refDist, -rolloff)

	case DistanceDisable:
		return 1
	}
	return 1
}

// calcPitchStep applies Doppler shift and converts the resulting
// pitch multiplier to a 16.16 fixed-point resample step (§4.5, §4.7).
func calcPitchStep(p *VoiceParams, props *VoiceProps, lp *ListenerParams) {
	pitch := clampf(props.Pitch, 0, float32(MaxPitch))

	dopplerFactor := props.DopplerFactor * lp.DopplerFactor
	if dopplerFactor > 0 && lp.SpeedOfSound > 0 {
		srcVel := props.Velocity
		lsnVel := lp.Velocity
		dir := p.Direction.Scale(-1) // source -> listener

		vss := dir.Dot(srcVel) * dopplerFactor
		vls := dir.Dot(lsnVel) * dopplerFactor

		speedOfSound := lp.SpeedOfSound
		// Clamp against the speed of sound itself, matching alu.cpp's
		// CalcSourceParams (the dopplerFactor is already folded into
		// vls/vss above, so dividing the bound by it again would double
		// it out).
		vls = minf(vls, speedOfSound)
		vss = minf(vss, speedOfSound)

		pitch *= (speedOfSound - vls) / (speedOfSound - vss)
	}

	pitch = clampf(pitch, 0, float32(MaxPitch))
	p.Pitch = pitch

	step := int32(pitch * float32(FracOne))
	if step < 1 {
		step = 1
	}
	if maxStep := int32(MaxPitch) << FracBits; step > maxStep {
		step = maxStep
	}
	p.Step = step
}

func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}
