// Package ingest turns Dozuki guides into retrievable text chunks:
// section extraction, size-bounded splitting, and single-guide or
// whole-site ingestion into the store.
package ingest

import (
	"fmt"
	"strings"

	"github.com/Dozuki/rag-guide-chat-poc/internal/dozuki"
)

// Section is one extractable unit of a guide with the image URLs that
// belong to it. Only steps carry images.
type Section struct {
	Text   string
	Images []string
}

// ExtractSections flattens a guide into its text sections: a header
// with title/category/difficulty/summary, the introduction, each step
// with its lines as bullets, the conclusion, and required parts/tools.
func ExtractSections(g *dozuki.Guide) []Section {
	var sections []Section

	header := fmt.Sprintf("Guide: %s\nCategory: %s\nDifficulty: %s\nSummary: %s",
		g.Title, g.Category, g.Difficulty, g.Summary)
	sections = append(sections, Section{Text: header})

	if intro := strings.TrimSpace(g.Introduction); intro != "" {
		sections = append(sections, Section{Text: "Introduction:\n" + intro})
	}

	for _, step := range g.Steps {
		var b strings.Builder
		fmt.Fprintf(&b, "Step %d: %s\n", step.OrderBy, step.Title)
		for _, line := range step.Lines {
			if line.Text != "" {
				b.WriteString("- " + line.Text + "\n")
			}
		}
		text := b.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		sections = append(sections, Section{Text: text, Images: stepImages(step)})
	}

	if concl := strings.TrimSpace(g.Conclusion); concl != "" {
		sections = append(sections, Section{Text: "Conclusion:\n" + concl})
	}
	if len(g.Parts) > 0 {
		sections = append(sections, Section{Text: itemList("Required Parts:", g.Parts)})
	}
	if len(g.Tools) > 0 {
		sections = append(sections, Section{Text: itemList("Required Tools:", g.Tools)})
	}
	return sections
}

func stepImages(step dozuki.Step) []string {
	if step.Media == nil || step.Media.Type != "image" {
		return nil
	}
	var urls []string
	for _, item := range step.Media.Data {
		if item.Original != "" {
			urls = append(urls, item.Original)
		}
	}
	return urls
}

func itemList(heading string, items []dozuki.Item) string {
	var b strings.Builder
	b.WriteString(heading + "\n")
	for _, it := range items {
		b.WriteString("- " + it.Text + "\n")
	}
	return b.String()
}
