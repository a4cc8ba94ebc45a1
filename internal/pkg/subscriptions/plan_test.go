package subscriptions

import (
	"testing"

	"github.com/ManuelReschke/PlanFox/app/models"
)

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "free", want: "free"},
		{in: "basic", want: "basic"},
		{in: "premium", want: "premium"},
		{in: "enterprise", want: "enterprise"},
		{in: "ENTERPRISE", want: "enterprise"},
		{in: " premium ", want: "premium"},
		{in: "invalid", want: "free"},
	}

	for _, tt := range tests {
		if got := normalizeTier(tt.in); got != tt.want {
			t.Fatalf("normalizeTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierRank(t *testing.T) {
	order := []string{"free", "basic", "premium", "enterprise"}
	for i := 1; i < len(order); i++ {
		if tierRank(order[i-1]) >= tierRank(order[i]) {
			t.Fatalf("expected %s to outrank %s", order[i], order[i-1])
		}
	}
}

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want string
	}{
		{from: "", to: "free", want: models.HistoryActionCreated},
		{from: "", to: "premium", want: models.HistoryActionCreated},
		{from: "free", to: "premium", want: models.HistoryActionUpgraded},
		{from: "basic", to: "enterprise", want: models.HistoryActionUpgraded},
		{from: "premium", to: "free", want: models.HistoryActionDowngraded},
		{from: "enterprise", to: "basic", want: models.HistoryActionDowngraded},
		{from: "premium", to: "premium", want: models.HistoryActionCancelled},
	}

	for _, tt := range tests {
		if got := classifyAction(tt.from, tt.to); got != tt.want {
			t.Fatalf("classifyAction(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
