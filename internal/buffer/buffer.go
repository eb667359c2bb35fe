package buffer

import (
	"strings"

	"github.com/riverfjs/formattedtext/internal/util"
)

// TextBuffer accumulates plain text and tracks the current UTF-16 offset.
type TextBuffer struct {
	sb          strings.Builder
	utf16Offset int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	tb.sb.WriteString(text)
	tb.utf16Offset += util.UTF16Len(text)
}

// UTF16Offset returns the current UTF-16 offset.
func (tb *TextBuffer) UTF16Offset() int {
	return tb.utf16Offset
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	return tb.sb.String()
}
