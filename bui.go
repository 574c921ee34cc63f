package pgfrag

import "unsafe"

/*
Bui ("builder") is the low-level text/args accumulator used by `Compile`.
Keeping it as its own small type, rather than inlining byte-slice
operations into the compiler, mirrors the teacher's `Bui` and keeps the
spacing/growth logic in one place.
*/
type Bui struct {
	Text   []byte
	Values []any
}

func (self *Bui) Grow(textLen, valuesLen int) {
	if textLen > 0 {
		self.Text = append(make([]byte, 0, len(self.Text)+textLen), self.Text...)
	}
	if valuesLen > 0 {
		self.Values = append(make([]any, 0, len(self.Values)+valuesLen), self.Values...)
	}
}

// Str appends literal text verbatim. Unlike the teacher's `Bui.Str`, this
// package never auto-inserts spacing: fragment literal segments already
// carry whatever whitespace the caller wrote.
func (self *Bui) Str(text string) {
	self.Text = append(self.Text, text...)
}

// Arg pushes a value onto `.Values` and returns its 1-based ordinal.
func (self *Bui) Arg(val any) int {
	self.Values = append(self.Values, val)
	return len(self.Values)
}

func (self Bui) String() string {
	return bytesToStringUnsafe(self.Text)
}

// Allocation-free byte-to-string cast. Safe here because `Bui.Text` is
// never reused after `Compile` returns.
func bytesToStringUnsafe(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}
