package domain

import "time"

// Signal motions form a closed enumeration, distinct from emotion patterns.
const (
	MotionWave   = "wave"
	MotionSwirl  = "swirl"
	MotionPulse  = "pulse"
	MotionRipple = "ripple"
)

var validMotions = map[string]bool{
	MotionWave:   true,
	MotionSwirl:  true,
	MotionPulse:  true,
	MotionRipple: true,
}

// IsValidMotion reports whether m is a known signal motion.
func IsValidMotion(m string) bool {
	return validMotions[m]
}

// EmotionalSignal is the raw, unpolished counterpart to Emotion. Intensity
// runs 0..100 — a different unit than Emotion.MotionIntensity's 0..1. The two
// scales are kept separate on purpose; do not convert between them.
type EmotionalSignal struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Color           string    `json:"color"`
	Motion          string    `json:"motion"`
	Intensity       float64   `json:"intensity"`
	SilenceDuration float64   `json:"silenceDuration"`
	Timestamp       time.Time `json:"timestamp"`

	// Owner carries the avatar only: the signal feed omits names.
	Owner *SignalOwner `json:"user,omitempty"`
}

// CreateSignalRequest is the body of POST /api/signals.
type CreateSignalRequest struct {
	Color           string   `json:"color"`
	Motion          string   `json:"motion"`
	Intensity       *float64 `json:"intensity"`
	SilenceDuration *float64 `json:"silenceDuration"`
}

// Validate checks required fields, the motion enumeration and the value
// ranges. SilenceDuration is optional and defaults to zero.
func (r *CreateSignalRequest) Validate() error {
	if r.Color == "" {
		return &FieldError{Field: "color", Reason: "color is required"}
	}
	if r.Motion == "" {
		return &FieldError{Field: "motion", Reason: "motion is required"}
	}
	if !IsValidMotion(r.Motion) {
		return &FieldError{Field: "motion", Reason: "unknown motion: " + r.Motion}
	}
	if r.Intensity == nil {
		return &FieldError{Field: "intensity", Reason: "intensity is required"}
	}
	if *r.Intensity < 0 || *r.Intensity > 100 {
		return &FieldError{Field: "intensity", Reason: "intensity must be between 0 and 100"}
	}
	if r.SilenceDuration != nil && *r.SilenceDuration < 0 {
		return &FieldError{Field: "silenceDuration", Reason: "silenceDuration must not be negative"}
	}
	return nil
}

// SilenceSeconds returns the requested silence duration, defaulting to zero.
func (r *CreateSignalRequest) SilenceSeconds() float64 {
	if r.SilenceDuration == nil {
		return 0
	}
	return *r.SilenceDuration
}
