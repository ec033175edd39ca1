package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Dozuki/rag-guide-chat-poc/internal/dozuki"
	"github.com/Dozuki/rag-guide-chat-poc/internal/store"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// Service loads guides from the Dozuki API and writes their chunks to
// the store.
type Service struct {
	Client    *dozuki.Client
	Store     store.Store
	Log       *log.Logger
	SiteID    string
	ChunkSize int
	Overlap   int
	PageSize  int // guide-list page size; the API caps at 200
}

func (s *Service) chunkParams() (int, int) {
	size, overlap := s.ChunkSize, s.Overlap
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap <= 0 {
		overlap = defaultOverlap
	}
	return size, overlap
}

// IngestGuide loads, chunks, and stores one guide. Returns the number
// of chunks written. Previously stored chunks for the same source are
// replaced, not appended.
func (s *Service) IngestGuide(ctx context.Context, guideID int) (int, error) {
	g, err := s.Client.Guide(ctx, guideID)
	if err != nil {
		return 0, err
	}
	sourceID := fmt.Sprintf("%s_guide_%d", s.SiteID, guideID)
	chunks := s.chunkGuide(g, sourceID)
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := s.Store.DeleteSource(ctx, sourceID); err != nil {
		return 0, err
	}
	if err := s.Store.UpsertChunks(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// chunkGuide converts a guide to store-ready chunks. Sections above the
// chunk size are split; every sub-chunk inherits its section's images.
func (s *Service) chunkGuide(g *dozuki.Guide, sourceID string) []api.Chunk {
	size, overlap := s.chunkParams()
	var out []api.Chunk
	for _, section := range ExtractSections(g) {
		for _, piece := range splitText(section.Text, size, overlap) {
			out = append(out, api.Chunk{
				ID:         api.ChunkID(sourceID, len(out)),
				Source:     sourceID,
				GuideID:    g.GuideID,
				Text:       piece,
				Images:     section.Images,
				GuideTitle: g.Title,
				GuideURL:   g.URL,
			})
		}
	}
	return out
}

// SiteOptions controls a whole-site ingestion run.
type SiteOptions struct {
	ResumeOffset int
	BatchSize    int // progress is reported at least every BatchSize guides
	Progress     func(api.ProgressEvent)
}

// ErrPaused reports that a site run stopped on context cancellation;
// the accompanying ProgressEvent carries the resume offset.
var ErrPaused = errors.New("site ingestion paused")

// IngestSite walks the full guide list and ingests every guide,
// continuing past individual failures. Cancelling ctx pauses the run:
// the current guide finishes, the returned event carries the offset to
// resume from, and the error is ErrPaused.
func (s *Service) IngestSite(ctx context.Context, opts SiteOptions) (api.ProgressEvent, error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = 10
	}
	report := func(ev api.ProgressEvent) {
		if opts.Progress != nil {
			opts.Progress(ev)
		}
	}

	all, err := s.listAllGuides(ctx)
	if err != nil {
		return api.ProgressEvent{SiteID: s.SiteID}, err
	}
	ev := api.ProgressEvent{
		SiteID:      s.SiteID,
		Status:      api.IngestFetching,
		TotalGuides: len(all),
	}
	report(ev)

	ev.Status = api.IngestProcessing
	for i := opts.ResumeOffset; i < len(all); i++ {
		// Between guides is the pause point; a guide in flight always
		// completes.
		if ctx.Err() != nil {
			ev.Status = api.IngestPaused
			ev.ResumeOffset = i
			report(ev)
			return ev, ErrPaused
		}

		g := all[i]
		if g.GuideID == 0 {
			continue
		}
		ev.CurrentGuide = g.Title
		n, err := s.IngestGuide(context.WithoutCancel(ctx), g.GuideID)
		if err != nil {
			ev.Failed++
			ev.Err = fmt.Sprintf("guide %d (%s): %v", g.GuideID, g.Title, err)
			if s.Log != nil {
				s.Log.Printf("ingest: guide %d failed: %v", g.GuideID, err)
			}
			report(ev)
			ev.Err = ""
			continue
		}
		ev.Processed++
		ev.TotalChunks += n
		if ev.Processed%batch == 0 {
			report(ev)
		}
	}

	ev.Status = api.IngestCompleted
	ev.CurrentGuide = ""
	ev.ResumeOffset = 0
	report(ev)
	return ev, nil
}

// listAllGuides pages through the site's guide list until a short page.
func (s *Service) listAllGuides(ctx context.Context) ([]dozuki.Summary, error) {
	page := s.PageSize
	if page <= 0 {
		page = 200
	}
	var all []dozuki.Summary
	for offset := 0; ; offset += page {
		batch, err := s.Client.Guides(ctx, offset, page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		if len(batch) < page {
			break
		}
	}
	return all, nil
}
