// Package adif parses ADIF (.adi) amateur radio logs into raw contact
// records. Only the classic tagged format is supported, not ADX.
package adif

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"qslgen/record"
)

// An ADIF stream is an optional free-text header terminated by <eoh>, then
// records of <name:length[:type]>value fields terminated by <eor>. The lexer
// splits it into tag and inter-tag text tokens; field values are recovered
// from the text token following each tag, honoring the declared length.
var (
	adiLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tag", Pattern: `<[^<>]*>`},
		{Name: "Text", Pattern: `[^<]+`},
	})

	fileParser = participle.MustBuild[file](
		participle.Lexer(adiLexer),
	)
)

type file struct {
	Tokens []*token `parser:"@@*"`
}

type token struct {
	Tag  *string `parser:"  @Tag"`
	Text *string `parser:"| @Text"`
}

// Parse reads an ADIF log and returns its records in input order. Field
// names are lower-cased and values trimmed; header fields are discarded.
// Records without a callsign are kept here and filtered by the caller.
func Parse(r io.Reader) ([]record.Raw, error) {
	f, err := fileParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse adif: %w", err)
	}
	return assemble(f)
}

// ParseString parses ADIF content from a string.
func ParseString(input string) ([]record.Raw, error) {
	f, err := fileParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse adif: %w", err)
	}
	return assemble(f)
}

func assemble(f *file) ([]record.Raw, error) {
	// A header is only present when the stream starts with free text; in
	// that case everything up to <eoh> is ignored.
	inHeader := len(f.Tokens) > 0 && f.Tokens[0].Text != nil

	var (
		out     []record.Raw
		cur     = record.Raw{}
		pending string // field name waiting for its value text
		length  = -1   // declared value length, -1 when unspecified
	)

	flushPending := func(value string) {
		if pending == "" {
			return
		}
		if length >= 0 && length < len(value) {
			value = value[:length]
		}
		if !inHeader {
			cur[pending] = strings.TrimSpace(value)
		}
		pending, length = "", -1
	}

	for _, tok := range f.Tokens {
		if tok.Text != nil {
			flushPending(*tok.Text)
			continue
		}

		// A new tag terminates any field still waiting for text: its value
		// is empty (e.g. <comment:0>).
		flushPending("")

		content := strings.Trim(*tok.Tag, "<>")
		name := content
		spec := ""
		if i := strings.IndexByte(content, ':'); i >= 0 {
			name, spec = content[:i], content[i+1:]
		}
		name = strings.ToLower(strings.TrimSpace(name))

		switch name {
		case "eoh":
			inHeader = false
			cur = record.Raw{}
		case "eor":
			if len(cur) > 0 {
				out = append(out, cur)
				cur = record.Raw{}
			}
		case "":
			// stray "<>", skip
		default:
			pending, length = name, -1
			if spec != "" {
				// length[:type]; the type suffix is irrelevant for display
				if j := strings.IndexByte(spec, ':'); j >= 0 {
					spec = spec[:j]
				}
				if n, err := strconv.Atoi(strings.TrimSpace(spec)); err == nil && n >= 0 {
					length = n
				}
			}
		}
	}
	flushPending("")
	if len(cur) > 0 {
		// lenient: accept a trailing record missing its <eor>
		out = append(out, cur)
	}
	return out, nil
}
