package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSectionName(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		desired string
		want    bool
	}{
		{"exact", "Skills", "Skills", true},
		{"case-insensitive", "SKILLS", "skills", true},
		{"desired inside heading", "Technical Skills", "Skills", true},
		{"heading inside desired", "Skills", "Technical Skills", true},
		{"whitespace tolerated", "  Experience ", "experience", true},
		{"unrelated", "Education", "Skills", false},
		{"partial word overlap accepted", "Work Experience Summary", "Experience", true},
		{"empty heading", "", "Skills", false},
		{"empty desired", "Skills", "", false},
		{"both empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchSectionName(tt.heading, tt.desired)
			assert.Equal(t, tt.want, got,
				"MatchSectionName(%q, %q)", tt.heading, tt.desired)
		})
	}
}

func TestMatchSectionNameSymmetricOnEquality(t *testing.T) {
	// The bidirectional rule makes equal names match regardless of
	// which side is the heading.
	assert.True(t, MatchSectionName("Projects", "projects"))
	assert.True(t, MatchSectionName("projects", "Projects"))
}
