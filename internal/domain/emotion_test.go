package domain

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestCreateEmotionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateEmotionRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				Pattern:         "waves",
				MotionIntensity: floatPtr(0.5),
			},
			wantErr: false,
		},
		{
			name: "zero intensity is valid",
			req: &CreateEmotionRequest{
				Color:           "#000000",
				Pattern:         "pulse",
				MotionIntensity: floatPtr(0),
			},
			wantErr: false,
		},
		{
			name: "full intensity is valid",
			req: &CreateEmotionRequest{
				Color:           "#FFFFFF",
				Pattern:         "spirals",
				MotionIntensity: floatPtr(1),
			},
			wantErr: false,
		},
		{
			name: "missing color",
			req: &CreateEmotionRequest{
				Pattern:         "waves",
				MotionIntensity: floatPtr(0.5),
			},
			wantErr: true,
			errMsg:  "color is required",
		},
		{
			name: "missing pattern",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				MotionIntensity: floatPtr(0.5),
			},
			wantErr: true,
			errMsg:  "pattern is required",
		},
		{
			name: "unknown pattern",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				Pattern:         "sparkles",
				MotionIntensity: floatPtr(0.5),
			},
			wantErr: true,
			errMsg:  "unknown pattern",
		},
		{
			name: "missing intensity",
			req: &CreateEmotionRequest{
				Color:   "#4A90E2",
				Pattern: "waves",
			},
			wantErr: true,
			errMsg:  "motionIntensity is required",
		},
		{
			name: "intensity above range",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				Pattern:         "waves",
				MotionIntensity: floatPtr(1.01),
			},
			wantErr: true,
			errMsg:  "between 0 and 1",
		},
		{
			name: "negative intensity",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				Pattern:         "waves",
				MotionIntensity: floatPtr(-0.1),
			},
			wantErr: true,
			errMsg:  "between 0 and 1",
		},
		{
			name: "signal intensity scale rejected",
			req: &CreateEmotionRequest{
				Color:           "#4A90E2",
				Pattern:         "waves",
				MotionIntensity: floatPtr(50),
			},
			wantErr: true,
			errMsg:  "between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error message = %v, want containing %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestIsValidPattern(t *testing.T) {
	for _, p := range []string{"waves", "particles", "spirals", "ripples", "circles", "flow", "pulse"} {
		if !IsValidPattern(p) {
			t.Errorf("IsValidPattern(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "wave", "Waves", "swirl"} {
		if IsValidPattern(p) {
			t.Errorf("IsValidPattern(%q) = true, want false", p)
		}
	}
}
