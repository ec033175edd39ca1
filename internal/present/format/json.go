package format

import (
	"encoding/json"
	"io"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// WriteJSONAnswer writes the full query result as JSON.
func WriteJSONAnswer(w io.Writer, res api.QueryResult, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
