package manifest

import "strings"

// opaqueDepth is the collection depth, counted from the record itself, at
// which the reader stops decomposing values. The record is depth 0, so a
// record may hold one level of nested collections (the :config map, tag
// vectors); anything deeper, such as icon markup, is kept as an opaque blob.
const opaqueDepth = 2

type valueKind int

const (
	kindNone valueKind = iota
	kindAtom
	kindKeyword
	kindString
	kindMap
	kindVector
	kindSet
	kindList
	kindOpaque
)

// value is a loosely typed EDN form. Maps keep their keys and values
// interleaved in items, in source order.
type value struct {
	kind  valueKind
	text  string
	items []value
}

// get looks up a keyword key in a map value.
func (v value) get(key string) (value, bool) {
	if v.kind != kindMap {
		return value{}, false
	}
	for i := 0; i+1 < len(v.items); i += 2 {
		k := v.items[i]
		if k.kind == kindKeyword && k.text == key {
			return v.items[i+1], true
		}
	}
	return value{}, false
}

func (v value) isCollection() bool {
	return v.kind == kindVector || v.kind == kindSet || v.kind == kindList
}

// name returns the text of a keyword, string, or symbol.
func (v value) name() string {
	switch v.kind {
	case kindKeyword, kindString:
		return v.text
	case kindAtom:
		if v.text == "nil" || v.text == "true" || v.text == "false" {
			return ""
		}
		return v.text
	}
	return ""
}

// boolean returns the value of a true/false literal.
func (v value) boolean() (bool, bool) {
	if v.kind != kindAtom {
		return false, false
	}
	switch v.text {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// tags returns the keyword elements of a tag sequence with the leading
// colon stripped. Non-keyword elements are dropped, so a sequence holding
// only strings yields an empty, non-nil slice.
func (v value) tags() []string {
	if v.kind == kindKeyword {
		return []string{v.text}
	}
	if !v.isCollection() {
		return nil
	}
	out := []string{}
	for _, item := range v.items {
		if item.kind == kindKeyword && item.text != "" {
			out = append(out, item.text)
		}
	}
	return out
}

// stringItems returns the string elements of a sequence.
func (v value) stringItems() []string {
	if !v.isCollection() {
		return nil
	}
	out := []string{}
	for _, item := range v.items {
		if item.kind == kindString {
			out = append(out, item.text)
		}
	}
	return out
}

// stripCommentLines drops every line whose trimmed content starts with ';'.
func stripCommentLines(src string) string {
	lines := strings.Split(src, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// splitRecords returns the text of every top-level {...} record. Only
// braces count towards nesting, so the vector usually wrapping a manifest
// is transparent. Strings, character literals and inline comments are
// skipped. Top-level sets, records discarded with #_, stray closers and
// records still open at EOF are dropped.
func splitRecords(src string) []string {
	var records []string
	depth, start := 0, -1
	skip := false
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '"':
			i = skipString(src, i)
		case '\\':
			i++
		case ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case '{':
			if depth == 0 {
				start = i
				skip = (i > 0 && src[i-1] == '#') || discarded(src, i)
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && !skip {
				records = append(records, src[start:i+1])
			}
		}
	}
	return records
}

// discarded reports whether the form opening at src[open] is preceded by
// the #_ reader macro, allowing whitespace and commas in between.
func discarded(src string, open int) bool {
	i := open - 1
	for i >= 0 && strings.IndexByte(" \t\r\n,", src[i]) >= 0 {
		i--
	}
	return i >= 1 && src[i] == '_' && src[i-1] == '#'
}

// skipString returns the index of the quote closing the string that opens
// at src[open], or the last index when the string is unterminated.
func skipString(src string, open int) int {
	for i := open + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(src) - 1
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokString
	tokKeyword
	tokAtom
	tokDiscard
	tokTag
)

type token struct {
	kind  tokenKind
	text  string
	delim byte
}

type lexer struct {
	src string
	pos int
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', ',', '{', '}', '[', ']', '(', ')', '"', ';':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == ',':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() token {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}
	}
	c := l.src[l.pos]
	switch c {
	case '{', '[', '(':
		l.pos++
		return token{kind: tokOpen, delim: c}
	case '}', ']', ')':
		l.pos++
		return token{kind: tokClose, delim: c}
	case '"':
		return token{kind: tokString, text: l.readString()}
	case '#':
		l.pos++
		if l.pos < len(l.src) {
			switch l.src[l.pos] {
			case '{':
				l.pos++
				return token{kind: tokOpen, delim: '#'}
			case '_':
				l.pos++
				return token{kind: tokDiscard}
			case '"':
				return token{kind: tokString, text: l.readString()}
			}
		}
		return token{kind: tokTag, text: l.readAtom()}
	case ':':
		return token{kind: tokKeyword, text: strings.TrimLeft(l.readAtom(), ":")}
	}
	return token{kind: tokAtom, text: l.readAtom()}
}

func (l *lexer) readAtom() string {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if isDelimiter(c) {
			break
		}
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) readString() string {
	var b strings.Builder
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		switch c {
		case '"':
			return b.String()
		case '\\':
			if l.pos >= len(l.src) {
				return b.String()
			}
			esc := l.src[l.pos]
			l.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// reader is a recursive-descent reader over a single record. It never
// fails: mismatched closers are skipped and unterminated collections end
// at EOF.
type reader struct {
	lex     lexer
	pending *token
}

func (r *reader) next() token {
	if r.pending != nil {
		t := *r.pending
		r.pending = nil
		return t
	}
	return r.lex.next()
}

// unread pushes t back so the enclosing collection sees it next.
func (r *reader) unread(t token) {
	r.pending = &t
}

func readRecord(src string) value {
	r := &reader{lex: lexer{src: src}}
	for {
		t := r.next()
		switch t.kind {
		case tokEOF:
			return value{}
		case tokOpen:
			if t.delim == '{' {
				return r.readCollection(t.delim, 0)
			}
		}
	}
}

func closerFor(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '(':
		return ')'
	}
	return '}'
}

func kindFor(open byte) valueKind {
	switch open {
	case '[':
		return kindVector
	case '(':
		return kindList
	case '#':
		return kindSet
	}
	return kindMap
}

func (r *reader) readCollection(open byte, depth int) value {
	v := value{kind: kindFor(open)}
	opaque := depth >= opaqueDepth
	if opaque {
		v.kind = kindOpaque
	}
	want := closerFor(open)
	for {
		t := r.next()
		switch t.kind {
		case tokEOF:
			return v
		case tokClose:
			if t.delim == want {
				return v
			}
			continue
		}
		item, ok := r.form(t, depth)
		if !ok || opaque {
			continue
		}
		v.items = append(v.items, item)
	}
}

// form reads the value starting at t. Elements of a collection at depth d
// that are themselves collections sit at depth d+1.
func (r *reader) form(t token, depth int) (value, bool) {
	switch t.kind {
	case tokOpen:
		return r.readCollection(t.delim, depth+1), true
	case tokString:
		return value{kind: kindString, text: t.text}, true
	case tokKeyword:
		return value{kind: kindKeyword, text: t.text}, true
	case tokAtom:
		return value{kind: kindAtom, text: t.text}, true
	case tokDiscard:
		r.skipForm(depth)
		return value{}, false
	case tokTag:
		next := r.next()
		if next.kind == tokEOF || next.kind == tokClose {
			r.unread(next)
			return value{}, false
		}
		return r.form(next, depth)
	}
	return value{}, false
}

func (r *reader) skipForm(depth int) {
	t := r.next()
	if t.kind == tokEOF || t.kind == tokClose {
		r.unread(t)
		return
	}
	r.form(t, depth)
}
