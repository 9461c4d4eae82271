package stepkernel

import "strings"

const defaultBufferCapacity = 64

// Buffer is the output token sequence: a fixed-capacity array shared by
// every view derived from it, plus a length marking how much of that
// array the view in hand has committed to. This is the one
// non-persistent structure in the engine: Append mutates positions
// past the view's own length, never positions a view has already
// claimed, so two views can share the backing array safely as long as
// neither writes inside a range the other considers its own.
//
// In read mode (IsWriteMode() == false) the buffer instead walks a fixed
// input token sequence with a read cursor; Unify in that mode consumes
// and compares rather than appends.
type Buffer struct {
	storage   *[]Term
	length    int
	writeMode bool

	input    []Term // only meaningful when writeMode == false
	readPos  int
}

// NewWriteBuffer returns an empty, write-mode buffer with default
// backing capacity.
func NewWriteBuffer() *Buffer {
	backing := make([]Term, 0, defaultBufferCapacity)
	return &Buffer{storage: &backing, length: 0, writeMode: true}
}

// NewReadBuffer returns a read-mode buffer over a fixed input sequence,
// positioned at its start.
func NewReadBuffer(input []Term) *Buffer {
	return &Buffer{writeMode: false, input: input, readPos: 0}
}

// IsWriteMode reports whether the buffer is producing output (true) or
// matching against supplied input (false).
func (buf *Buffer) IsWriteMode() bool { return buf.writeMode }

// Len returns the number of tokens committed to this view.
func (buf *Buffer) Len() int {
	if buf.writeMode {
		return buf.length
	}
	return buf.readPos
}

// Append adds tokens to a write-mode buffer's shared array at
// positions [length, length+len(tokens)) and returns a new view with
// length advanced. It never fails. Calling Append on a read-mode
// buffer is a programmer error (callers choose the step form — Emit —
// that dispatches correctly based on IsWriteMode, so this never
// happens in practice) and panics.
func (buf *Buffer) Append(tokens ...Term) *Buffer {
	if !buf.writeMode {
		panic("stepkernel: Append called on a read-mode buffer")
	}
	s := *buf.storage
	needed := buf.length + len(tokens)
	if needed > cap(s) {
		grown := make([]Term, len(s), max(needed*2, defaultBufferCapacity))
		copy(grown, s)
		s = grown
	}
	s = s[:needed]
	copy(s[buf.length:needed], tokens)
	*buf.storage = s
	return &Buffer{storage: buf.storage, length: needed, writeMode: true}
}

// NextToken advances a read-mode buffer's cursor by one token, returning
// it along with the advanced view. ok is false at end of input.
func (buf *Buffer) NextToken() (Term, *Buffer, bool) {
	if buf.writeMode || buf.readPos >= len(buf.input) {
		return nil, buf, false
	}
	tok := buf.input[buf.readPos]
	return tok, &Buffer{writeMode: false, input: buf.input, readPos: buf.readPos + 1}, true
}

// UnifyTokens appends tokens in write mode (always succeeding), or in
// read mode consumes the next len(tokens) input tokens and structurally
// compares each; it fails (ok=false) on the first mismatch or if input
// is exhausted before all tokens are consumed.
func (buf *Buffer) UnifyTokens(tokens []Term) (*Buffer, bool) {
	if buf.writeMode {
		return buf.Append(tokens...), true
	}
	cur := buf
	for _, want := range tokens {
		got, next, ok := cur.NextToken()
		if !ok || !got.StructuralEqual(want) {
			return buf, false
		}
		cur = next
	}
	return cur, true
}

// AsString renders tokens [0, Len()) as whitespace-joined text. This is
// the host's default rendering rule; a host embedding the engine is
// free to post-process the token slice itself instead (see Tokens).
func (buf *Buffer) AsString() string {
	var sb strings.Builder
	for i, t := range buf.Tokens() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Tokens returns the committed token slice [0, Len()) for this view. In
// write mode this is a slice into the shared backing array up to the
// view's own length — safe to read because nothing beyond that length
// belongs to this view. In read mode it is the consumed prefix of the
// input.
func (buf *Buffer) Tokens() []Term {
	if buf.writeMode {
		return (*buf.storage)[:buf.length]
	}
	return buf.input[:buf.readPos]
}

// SetLastToken replaces the most recently appended token in place, in
// this view's own partition. It is used only by the conjugate-verb
// step, which mutates the already-emitted region and restores it if its
// continuation fails — this is safe because no committed reader ever
// observes the intermediate token.
func (buf *Buffer) SetLastToken(t Term) (prev Term, ok bool) {
	if !buf.writeMode || buf.length == 0 {
		return nil, false
	}
	s := *buf.storage
	prev = s[buf.length-1]
	s[buf.length-1] = t
	return prev, true
}
