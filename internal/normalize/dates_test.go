package normalize

import "testing"

func TestAdmissionDate(t *testing.T) {
	tests := []struct {
		in, fallback, want string
	}{
		{"2026-08-28", "2026-01-01", "2026-08-28"},
		{" 2026-08-28 ", "2026-01-01", "2026-08-28"},
		{"28/08/2026", "2026-01-01", "2026-01-01"},
		{"2026-8-28", "2026-01-01", "2026-01-01"},
		{"", "2026-01-01", "2026-01-01"},
		{"not a date", "2026-01-01", "2026-01-01"},
	}
	for _, tt := range tests {
		if got := AdmissionDate(tt.in, tt.fallback); got != tt.want {
			t.Errorf("AdmissionDate(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
