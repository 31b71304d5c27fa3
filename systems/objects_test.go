package systems

import (
	"reflect"
	"testing"

	"github.com/automoto/tmxview/fonts"
	"golang.org/x/image/font"
)

func TestWrapLines(t *testing.T) {
	face := fonts.Face("", 10, fonts.Style{}, 72)
	twoWords := font.MeasureString(face, "one two").Ceil()

	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"no_wrap", "one two three", 0, []string{"one two three"}},
		{"newlines_kept", "top\nbottom", 0, []string{"top", "bottom"}},
		{"wrapped", "one two three", twoWords, []string{"one two", "three"}},
		{"long_word_alone", "supercalifragilistic a", 5, []string{"supercalifragilistic", "a"}},
		{"blank_paragraph", "a\n\nb", twoWords, []string{"a", "", "b"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapLines(face, c.text, c.width)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestAlignOffset(t *testing.T) {
	cases := []struct {
		align string
		want  int
	}{
		{"left", 0},
		{"top", 0},
		{"", 0},
		{"center", 30},
		{"right", 60},
		{"bottom", 60},
		{"justify", 0},
	}

	for _, c := range cases {
		t.Run(c.align, func(t *testing.T) {
			if got := alignOffset(c.align, 100, 40); got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
		})
	}
}
