// Package present renders answers for the terminal.
package present

import (
	"io"

	"github.com/Dozuki/rag-guide-chat-poc/internal/present/format"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	WordWrap   int
}

// ParseMode parses a string like "plain", "pretty", "json".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	default:
		return ModePlain, false
	}
}

// RenderAnswer writes a resolved answer according to options.
func RenderAnswer(w io.Writer, res api.QueryResult, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONAnswer(w, res, opts.JSONIndent)
	case ModePretty:
		return format.WritePrettyAnswer(w, res, opts.WordWrap)
	default:
		return format.WritePlainAnswer(w, res)
	}
}
