package api

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one turn of a conversation as sent by the chat client.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. The full message history is
// re-sent on every request; the server answers the latest user message.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	TopK     int           `json:"top_k,omitempty"`
}

// SourceGuide points back at a guide that contributed context to an answer.
type SourceGuide struct {
	GuideID int    `json:"guide_id"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
}

// QueryResult is the answer payload. Answer carries the raw constrained
// markup; AnswerHTML is the sanitized rendering of the same text, safe to
// insert into a page without further processing.
type QueryResult struct {
	Answer       string        `json:"answer"`
	AnswerHTML   string        `json:"answer_html"`
	Sources      []string      `json:"sources"`
	NumContexts  int           `json:"num_contexts"`
	SourceGuides []SourceGuide `json:"source_guides,omitempty"`
}

// Chunk is one ingested slice of guide text plus the image URLs that
// belong to the section it was cut from.
type Chunk struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	GuideID    int      `json:"guide_id"`
	Text       string   `json:"text"`
	Images     []string `json:"images,omitempty"`
	GuideTitle string   `json:"guide_title,omitempty"`
	GuideURL   string   `json:"guide_url,omitempty"`
}

// IngestStatus reported by site ingestion progress callbacks.
type IngestStatus string

const (
	IngestFetching   IngestStatus = "fetching"
	IngestProcessing IngestStatus = "processing"
	IngestPaused     IngestStatus = "paused"
	IngestCompleted  IngestStatus = "completed"
)

// ProgressEvent describes where a site ingestion run currently stands.
type ProgressEvent struct {
	SiteID       string       `json:"site_id"`
	Status       IngestStatus `json:"status"`
	TotalGuides  int          `json:"total_guides"`
	Processed    int          `json:"processed_guides"`
	Failed       int          `json:"failed_guides"`
	TotalChunks  int          `json:"total_chunks"`
	CurrentGuide string       `json:"current_guide,omitempty"`
	ResumeOffset int          `json:"resume_offset,omitempty"`
	Err          string       `json:"error,omitempty"`
}
