package dozuki

// Guide mirrors the subset of the Dozuki guide payload the ingestion
// pipeline reads. Introduction and conclusion arrive pre-rendered as
// text by the API.
type Guide struct {
	GuideID      int    `json:"guideid"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Summary      string `json:"summary"`
	Difficulty   string `json:"difficulty"`
	Category     string `json:"category"`
	Introduction string `json:"introduction_rendered"`
	Conclusion   string `json:"conclusion_rendered"`
	Steps        []Step `json:"steps"`
	Parts        []Item `json:"parts"`
	Tools        []Item `json:"tools"`
}

type Step struct {
	Title   string `json:"title"`
	OrderBy int    `json:"orderby"`
	Lines   []Line `json:"lines"`
	Media   *Media `json:"media,omitempty"`
}

type Line struct {
	Text string `json:"text_rendered"`
}

// Media holds step attachments; only type "image" carries URLs we keep.
type Media struct {
	Type string      `json:"type"`
	Data []MediaItem `json:"data"`
}

type MediaItem struct {
	Original string `json:"original"`
}

type Item struct {
	Text string `json:"text"`
}

// Summary is one entry of the site-wide guide listing.
type Summary struct {
	GuideID int    `json:"guideid"`
	Title   string `json:"title"`
}
