package alsoft

// config.go - process-wide configuration loaded once from environment
// variables (§6/§9): ConeScale, ZScale, and OverrideReverbSpeedOfSound
// are initialized from the environment once and thereafter immutable.
// Copied into listener snapshots at publish time rather than re-read
// per quantum.

import (
	"os"
	"strconv"
	"sync"
)

// EngineConfig holds the handful of environment-derived knobs that
// behave like global constants once the engine starts.
type EngineConfig struct {
	// ConeScale halves a source's cone angle scaling when half-angle
	// cones are requested (__ALSOFT_HALF_ANGLE_CONES).
	ConeScale float32

	// ZScale flips the Z axis for mono-source localization when
	// requested (__ALSOFT_REVERSE_Z).
	ZScale float32

	// OverrideReverbSpeedOfSound, when true, makes reverb decay
	// distance use DefaultSpeedOfSound instead of the listener's
	// current speed of sound (__ALSOFT_REVERB_IGNORES_SOUND_SPEED).
	OverrideReverbSpeedOfSound bool
}

var (
	globalConfig     EngineConfig
	globalConfigOnce sync.Once
)

// LoadConfig reads the environment once per process and returns the
// resulting immutable EngineConfig. Subsequent calls return the same
// value without re-reading the environment.
func LoadConfig() EngineConfig {
	globalConfigOnce.Do(func() {
		globalConfig = EngineConfig{
			ConeScale: 1.0,
			ZScale:    1.0,
		}
		if envTruthy("__ALSOFT_HALF_ANGLE_CONES") {
			globalConfig.ConeScale = 0.5
		}
		if envTruthy("__ALSOFT_REVERSE_Z") {
			globalConfig.ZScale = -1.0
		}
		if envTruthy("__ALSOFT_REVERB_IGNORES_SOUND_SPEED") {
			globalConfig.OverrideReverbSpeedOfSound = true
		}
	})
	return globalConfig
}

func envTruthy(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	// Accept the same loose truthiness the original command-line tool
	// used: any non-empty, non-"0" string counts.
	return v != "" && v != "0"
}
