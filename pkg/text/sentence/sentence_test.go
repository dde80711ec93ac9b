package sentence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-textpipe/pkg/text/sentence"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "Dogs are great. I hate snakes.",
			want: []string{"Dogs are great.", "I hate snakes."},
		},
		{
			name: "no terminator",
			text: "hello world",
			want: []string{"hello world"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "blank",
			text: " \n\t ",
			want: []string{},
		},
		{
			name: "terminator runs",
			text: "Wait!! Really?! Yes.",
			want: []string{"Wait!!", "Really?!", "Yes."},
		},
		{
			name: "abbreviation",
			text: "Mr. Smith arrived. He sat down.",
			want: []string{"Mr. Smith arrived.", "He sat down."},
		},
		{
			name: "initials",
			text: "J. R. R. Tolkien wrote books. They sold well.",
			want: []string{"J. R. R. Tolkien wrote books.", "They sold well."},
		},
		{
			name: "decimal number",
			text: "Pi is 3.14 today. Ok.",
			want: []string{"Pi is 3.14 today.", "Ok."},
		},
		{
			name: "closing quote",
			text: `He said "Stop." Then he left.`,
			want: []string{`He said "Stop."`, "Then he left."},
		},
		{
			name: "trailing text",
			text: "First one.   second without end",
			want: []string{"First one.", "second without end"},
		},
		{
			name: "newlines",
			text: "Line one.\nLine two!\n",
			want: []string{"Line one.", "Line two!"},
		},
	}

	splitter := sentence.NewSplitter()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, splitter.Split(tt.text))
		})
	}
}

func TestSplitCustomAbbreviations(t *testing.T) {
	t.Parallel()

	splitter := sentence.NewSplitter("approx.", "Corp")

	assert.Equal(t,
		[]string{"Mr.", "Smith works at Acme Corp. now."},
		splitter.Split("Mr. Smith works at Acme Corp. now."),
	)
	assert.Equal(t,
		[]string{"It weighs approx. ten kilos."},
		splitter.Split("It weighs approx. ten kilos."),
	)
}
