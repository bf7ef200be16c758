package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/breedkit/errors"
)

type sampleParams struct {
	NumInds int     `param:"num-inds" validate:"gte=1"`
	Retries int     `param:"duplicate-retries" validate:"gte=0"`
	Prob    float64 `validate:"gte=0,lte=1"`
}

func TestParams_Valid(t *testing.T) {
	if err := Params("pipe", sampleParams{NumInds: 1, Retries: 0, Prob: 0.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParams_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		params  sampleParams
		wantKey string
		wantMsg string
	}{
		{"num-inds below one", sampleParams{NumInds: 0, Prob: 0.5}, "pipe.num-inds", "must be >= 1"},
		{"negative retries", sampleParams{NumInds: 1, Retries: -1}, "pipe.duplicate-retries", "must be >= 0"},
		{"untagged field uses kebab name", sampleParams{NumInds: 1, Prob: 2}, "pipe.prob", "must be <= 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Params("pipe", tc.params)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != errors.ErrCodeInvalidParameter {
				t.Errorf("expected INVALID_PARAMETER, got %s", appErr.Code)
			}
			if appErr.Details["key"] != tc.wantKey {
				t.Errorf("expected key %s, got %v", tc.wantKey, appErr.Details["key"])
			}
			if !strings.Contains(appErr.Message, tc.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tc.wantMsg, appErr.Message)
			}
		})
	}
}

func TestToKebabCase(t *testing.T) {
	if got := toKebabCase("SwitchAt"); got != "switch-at" {
		t.Errorf("got %q", got)
	}
}
