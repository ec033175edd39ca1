// Command generate_sample emits a deterministic set of sample chunks as
// JSON for exercising retrieval without a live Dozuki site. Pipe the
// output somewhere useful:
//
//	go run scripts/generate_sample.go > sample_chunks.json
package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

var verbs = []string{"Remove", "Install", "Inspect", "Tighten", "Replace", "Clean", "Align", "Test"}
var parts = []string{"blade", "battery", "handle", "guard", "motor", "switch", "chain", "filter"}
var tools = []string{"hex wrench", "screwdriver", "torque driver", "pliers", "soft brush"}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const guides = 40
	out := make([]api.Chunk, 0, guides*4)

	for g := 1; g <= guides; g++ {
		sourceID := fmt.Sprintf("sample_guide_%d", g)
		part := parts[mr.Intn(len(parts))]
		title := fmt.Sprintf("%s the %s", verbs[mr.Intn(len(verbs))], part)
		steps := 2 + mr.Intn(3)
		for s := 0; s < steps; s++ {
			text := fmt.Sprintf("Step %d: %s the %s using a %s. Work slowly and check alignment before continuing.",
				s+1, verbs[mr.Intn(len(verbs))], part, tools[mr.Intn(len(tools))])
			out = append(out, api.Chunk{
				ID:         api.ChunkID(sourceID, s),
				Source:     sourceID,
				GuideID:    g,
				Text:       text,
				GuideTitle: title,
				GuideURL:   fmt.Sprintf("https://example.dozuki.com/Guide/%d", g),
			})
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
}
