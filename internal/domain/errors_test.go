package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rate limited", ErrRateLimited, "rate_limited"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"malformed", ErrMalformed, "malformed"},
		{"upstream", ErrUpstream, "upstream"},
		{"wrapped rate limited", fmt.Errorf("fetch: %w", ErrRateLimited), "rate_limited"},
		{"wrapped upstream", fmt.Errorf("fetch: %w", ErrUpstream), "upstream"},
		{"unclassified", errors.New("connection reset"), "upstream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FailureReason(tt.err)
			if got != tt.want {
				t.Errorf("FailureReason(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
