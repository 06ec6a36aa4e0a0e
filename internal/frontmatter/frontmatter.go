// Package frontmatter separates a leading YAML frontmatter block from the
// Markdown body of a document.
package frontmatter

import (
	"bytes"
	"errors"
)

// Delimiter is the marker line (without newline) that opens and closes a block.
const Delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Style captures the newline convention of the input so Join can reproduce it.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Parts is the result of Split.
//
// Frontmatter holds the YAML between the delimiter lines (delimiters excluded).
// When Had is false the input carried no block and Body is the whole input.
type Parts struct {
	Frontmatter []byte
	Body        []byte
	Had         bool
	Style       Style
}

// Block returns the full delimited frontmatter block, or nil when none was present.
func (p Parts) Block() []byte {
	if !p.Had {
		return nil
	}
	nl := p.Style.newline()
	out := make([]byte, 0, 2*(len(Delimiter)+len(nl))+len(p.Frontmatter))
	out = append(out, Delimiter+nl...)
	out = append(out, p.Frontmatter...)
	out = append(out, Delimiter+nl...)
	return out
}

// Split separates YAML frontmatter from the Markdown body.
//
// A block opens only when the content starts with the exact line "---" and
// closes at the next line that is exactly "---". Both LF and CRLF newlines
// are accepted; the newline of the first line decides which one is used.
func Split(content []byte) (Parts, error) {
	style := detectStyle(content)
	nl := style.Newline

	open := []byte(Delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return Parts{Body: content, Style: style}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Parts{Frontmatter: []byte{}, Body: rest[len(open):], Had: true, Style: style}, nil
	}

	closing := []byte(nl + Delimiter + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return Parts{Style: style}, ErrMissingClosingDelimiter
	}

	return Parts{
		Frontmatter: rest[:idx+len(nl)],
		Body:        rest[idx+len(closing):],
		Had:         true,
		Style:       style,
	}, nil
}

// Join reassembles a document from its parts. Join(Split(x)) reproduces x.
func Join(p Parts) []byte {
	if !p.Had {
		return p.Body
	}
	block := p.Block()
	out := make([]byte, 0, len(block)+len(p.Body))
	out = append(out, block...)
	out = append(out, p.Body...)
	return out
}

func (s Style) newline() string {
	if s.Newline == "" {
		return "\n"
	}
	return s.Newline
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
