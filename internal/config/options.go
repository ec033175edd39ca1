package config

// Option is one configuration key with its default and meaning.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns the configuration options and their meanings.
// This is the single source of truth for default values.
func Options() []Option {
	return []Option{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/guidechat.db"},
		{Key: "http_addr", Default: ":8088", Comment: "HTTP listen address for the chat server"},

		{Key: "dozuki.base_url", Default: "https://hansaw.dozuki.com", Comment: "Dozuki site base URL"},
		{Key: "dozuki.app_id", Default: "9c9e0e7ae61d3a70bfe4debb87ad145a", Comment: "X-App-Id header for the Dozuki API"},
		{Key: "dozuki.site_id", Default: "hansaw", Comment: "Site identifier used in chunk source ids"},

		{Key: "cors.allowed_origins", Default: "*", Comment: "Comma-separated origins allowed on /api/chat; * allows any"},

		{Key: "query.top_k", Default: 5, Comment: "Number of context chunks retrieved per question"},

		{Key: "ingest.batch_size", Default: 10, Comment: "Guides processed between progress reports during site ingestion"},
		{Key: "ingest.page_size", Default: 200, Comment: "Page size when listing guides from the Dozuki API"},

		{Key: "llm.url", Default: "", Comment: "Completion endpoint URL; empty selects the extractive fallback"},
		{Key: "llm.model", Default: "", Comment: "Model identifier sent to the completion endpoint"},
		{Key: "llm.max_tokens", Default: 1024, Comment: "Token budget for generated answers"},
	}
}
