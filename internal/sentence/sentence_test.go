package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain sentences",
			text: "Validation is required. Verification follows. Then certification.",
			want: []string{"Validation is required.", "Verification follows.", "Then certification."},
		},
		{
			name: "mixed terminators",
			text: "Is it valid? Yes! It is.",
			want: []string{"Is it valid?", "Yes!", "It is."},
		},
		{
			name: "no terminator",
			text: "no punctuation at all",
			want: []string{"no punctuation at all"},
		},
		{
			name: "trailing punctuation without space",
			text: "One. Two.",
			want: []string{"One.", "Two."},
		},
		{
			name: "abbreviation style dots still split",
			text: "See clause 4.1. It applies.",
			want: []string{"See clause 4.1.", "It applies."},
		},
		{
			name: "empty input",
			text: "",
			want: []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestSplitKeepsNewlinesInsideSentences(t *testing.T) {
	got := Split("Validation shall be\ncompleted within five years. Next.")
	assert.Equal(t, []string{"Validation shall be\ncompleted within five years.", "Next."}, got)
}

func TestFirst(t *testing.T) {
	assert.Equal(t, "The deadline is five years.", First("The deadline is five years. More detail follows."))
	assert.Equal(t, "single", First("single"))
	assert.Equal(t, "", First(""))
}
