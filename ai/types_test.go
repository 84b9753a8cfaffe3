package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKnownRoles(t *testing.T) {
	tests := []struct {
		name     string
		detected []string
		want     []string
	}{
		{
			name:     "exact matches",
			detected: []string{"plumber", "electrician"},
			want:     []string{"plumber", "electrician"},
		},
		{
			name:     "case insensitive",
			detected: []string{"Plumber", "ELECTRICIAN"},
			want:     []string{"plumber", "electrician"},
		},
		{
			name:     "substring resolves to canonical entry",
			detected: []string{"plumb"},
			want:     []string{"plumber"},
		},
		{
			name:     "unknown roles discarded",
			detected: []string{"astronaut", "wizard"},
			want:     nil,
		},
		{
			name:     "duplicates collapse",
			detected: []string{"plumber", "Plumber", "plumb"},
			want:     []string{"plumber"},
		},
		{
			name:     "blank entries skipped",
			detected: []string{"", "  ", "tutor"},
			want:     []string{"tutor"},
		},
		{
			name:     "empty input",
			detected: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchKnownRoles(tt.detected))
		})
	}
}
