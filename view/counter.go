package view

import "unicode/utf16"

// MaxChars is the soft limit shown by the compose counter.
const MaxChars = 280

// Remaining returns MaxChars minus the length of text in UTF-16 code units,
// which is how the browser measures the compose field. It goes negative
// once the limit is passed.
func Remaining(text string) int {
	return MaxChars - len(utf16.Encode([]rune(text)))
}

type counterView struct {
	Remaining int
	Over      bool
}

func newCounter(text string) counterView {
	n := Remaining(text)
	return counterView{Remaining: n, Over: n < 0}
}
