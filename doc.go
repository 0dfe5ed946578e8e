// Package alsoft implements the real-time mixing pipeline of a 3D
// positional audio engine: per-voice parameter calculation, ambisonic
// panning, B-Format decoding, HRTF/UHJ/BS2B post-processing, and the
// lock-free update/event channels that connect API-side scene changes
// to the audio thread.
//
// Platform audio backends, device enumeration, HRIR/ambdec file
// parsing, and individual effect DSP algorithms are treated as
// external collaborators; only their interfaces are defined here
// (see AudioBackend, EffectState).
package alsoft
