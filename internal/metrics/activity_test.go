package metrics

import "testing"

func TestActivityScoreForDays(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 100},
		{7, 100},
		{8, 90},
		{30, 90},
		{31, 70},
		{90, 70},
		{91, 50},
		{180, 50},
		{181, 30},
		{365, 30},
		{366, 10},
	}

	for _, tt := range tests {
		if got := activityScoreForDays(tt.days); got != tt.want {
			t.Errorf("activityScoreForDays(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}
