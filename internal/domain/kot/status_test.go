package kot

import (
	"testing"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []enum.ItemStatus
		want     enum.ItemStatus
	}{
		{"empty ticket", nil, enum.ItemStatusPlaced},
		{"single placed", []enum.ItemStatus{enum.ItemStatusPlaced}, enum.ItemStatusPlaced},
		{"placed beats served", []enum.ItemStatus{enum.ItemStatusPlaced, enum.ItemStatusServed}, enum.ItemStatusPlaced},
		{"preparing beats ready and served", []enum.ItemStatus{enum.ItemStatusPreparing, enum.ItemStatusReady, enum.ItemStatusServed}, enum.ItemStatusPreparing},
		{"ready beats served", []enum.ItemStatus{enum.ItemStatusReady, enum.ItemStatusServed}, enum.ItemStatusReady},
		{"all served", []enum.ItemStatus{enum.ItemStatusServed, enum.ItemStatusServed}, enum.ItemStatusServed},
		{"unknown status falls back to placed", []enum.ItemStatus{enum.ItemStatusServed, "burnt"}, enum.ItemStatusPlaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStatus(tt.statuses); got != tt.want {
				t.Errorf("ComputeStatus(%v) = %q, want %q", tt.statuses, got, tt.want)
			}
		})
	}
}

// The aggregate depends only on which statuses are present, never on
// their order or multiplicity.
func TestComputeStatusPermutationInvariant(t *testing.T) {
	perms := [][]enum.ItemStatus{
		{enum.ItemStatusPreparing, enum.ItemStatusReady, enum.ItemStatusServed},
		{enum.ItemStatusServed, enum.ItemStatusPreparing, enum.ItemStatusReady},
		{enum.ItemStatusReady, enum.ItemStatusServed, enum.ItemStatusPreparing},
		{enum.ItemStatusReady, enum.ItemStatusReady, enum.ItemStatusServed, enum.ItemStatusPreparing},
	}

	for _, p := range perms {
		if got := ComputeStatus(p); got != enum.ItemStatusPreparing {
			t.Errorf("ComputeStatus(%v) = %q, want %q", p, got, enum.ItemStatusPreparing)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to enum.ItemStatus
		want     bool
	}{
		{enum.ItemStatusPlaced, enum.ItemStatusPreparing, true},
		{enum.ItemStatusPreparing, enum.ItemStatusReady, true},
		{enum.ItemStatusReady, enum.ItemStatusServed, true},
		{enum.ItemStatusPlaced, enum.ItemStatusServed, true},
		{enum.ItemStatusServed, enum.ItemStatusServed, true},
		{enum.ItemStatusServed, enum.ItemStatusReady, false},
		{enum.ItemStatusPreparing, enum.ItemStatusPlaced, false},
		{enum.ItemStatusPlaced, "on_fire", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
