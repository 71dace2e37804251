package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "quiz-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the OpenAI API.
type AIConfig struct {
	// Model is the chat model identifier (default "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length (default 1500).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the fixed sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CallDelay is the fixed pause between successive API calls (default 1s).
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`
}

// ExtractConfig holds settings for the question extraction stage.
type ExtractConfig struct {
	// SourcePath is the README-style markdown file holding the questions.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// CSVPath is the output CSV file for extracted records.
	CSVPath string `json:"csv_path" yaml:"csv_path"`
}

// SlidesBackend identifies the PDF text-extraction tool.
type SlidesBackend string

const (
	BackendPdftotext  SlidesBackend = "pdftotext"
	BackendMarkitdown SlidesBackend = "markitdown"
)

// SlidesConfig holds settings for the slide-deck extraction stage.
type SlidesConfig struct {
	// Backend selects the extraction tool: pdftotext or markitdown.
	Backend SlidesBackend `json:"backend" yaml:"backend"`

	// DeckPath is the slide-deck PDF.
	DeckPath string `json:"deck_path" yaml:"deck_path"`

	// TextPath is where the cleaned deck text is cached.
	TextPath string `json:"text_path" yaml:"text_path"`
}

// ExplainConfig holds settings for the explanation stage.
type ExplainConfig struct {
	AIConfig `yaml:",inline"`

	// CSVPath is the question CSV produced by extraction.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// DeckTextPath is the cached slide-deck text used as prompt context.
	// Explanations are generated without deck context when the file is absent.
	DeckTextPath string `json:"deck_text_path" yaml:"deck_text_path"`

	// OutputPath is the JSON file mapping question index to explanation.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// BankConfig holds settings for the question bank.
type BankConfig struct {
	// BankDir is the base directory for the bank (contains index/).
	BankDir string `json:"bank_dir" yaml:"bank_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SessionConfig holds settings for study-session assembly.
type SessionConfig struct {
	// Count is the number of questions in the session (default 5, max 20).
	Count int `json:"count" yaml:"count"`

	// Topic optionally restricts the session to one AWS service tag.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Slides  SlidesConfig  `json:"slides" yaml:"slides"`
	Explain ExplainConfig `json:"explain" yaml:"explain"`
	Bank    BankConfig    `json:"bank" yaml:"bank"`
	Session SessionConfig `json:"session" yaml:"session"`
}
