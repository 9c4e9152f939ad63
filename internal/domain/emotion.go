package domain

import "time"

// Emotion patterns form a closed enumeration; the persistence layer carries a
// matching CHECK constraint.
const (
	PatternWaves     = "waves"
	PatternParticles = "particles"
	PatternSpirals   = "spirals"
	PatternRipples   = "ripples"
	PatternCircles   = "circles"
	PatternFlow      = "flow"
	PatternPulse     = "pulse"
)

var validPatterns = map[string]bool{
	PatternWaves:     true,
	PatternParticles: true,
	PatternSpirals:   true,
	PatternRipples:   true,
	PatternCircles:   true,
	PatternFlow:      true,
	PatternPulse:     true,
}

// IsValidPattern reports whether p is a known emotion pattern.
func IsValidPattern(p string) bool {
	return validPatterns[p]
}

// Emotion is the core post entity: a color, a named visual pattern and a
// motion intensity. MotionIntensity is a unit scalar in [0,1] — NOT the same
// scale as EmotionalSignal.Intensity, which runs 0..100. Emotions are
// immutable after creation; there is no update endpoint.
type Emotion struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Color           string    `json:"color"`
	Pattern         string    `json:"pattern"`
	MotionIntensity float64   `json:"motionIntensity"`
	CreatedAt       time.Time `json:"createdAt"`

	// Owner is the poster's public projection, attached on reads. Nil when
	// the owning account has been deleted (orphaned posts are retained).
	Owner *Owner `json:"user,omitempty"`
}

// CreateEmotionRequest is the body of POST /api/emotions. MotionIntensity is
// a pointer so a missing field can be told apart from a legitimate zero.
type CreateEmotionRequest struct {
	Color           string   `json:"color"`
	Pattern         string   `json:"pattern"`
	MotionIntensity *float64 `json:"motionIntensity"`
}

// Validate checks required fields, the pattern enumeration and the intensity
// range.
func (r *CreateEmotionRequest) Validate() error {
	if r.Color == "" {
		return &FieldError{Field: "color", Reason: "color is required"}
	}
	if r.Pattern == "" {
		return &FieldError{Field: "pattern", Reason: "pattern is required"}
	}
	if !IsValidPattern(r.Pattern) {
		return &FieldError{Field: "pattern", Reason: "unknown pattern: " + r.Pattern}
	}
	if r.MotionIntensity == nil {
		return &FieldError{Field: "motionIntensity", Reason: "motionIntensity is required"}
	}
	if *r.MotionIntensity < 0 || *r.MotionIntensity > 1 {
		return &FieldError{Field: "motionIntensity", Reason: "motionIntensity must be between 0 and 1"}
	}
	return nil
}
