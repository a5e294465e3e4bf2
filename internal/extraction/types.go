package extraction

import "time"

// TaskDraft is the normalized result of one extraction. DueDate is empty
// when no date could be determined; otherwise it is a real YYYY-MM-DD date.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"`
}

// ExtractInput is the input of a single extraction.
type ExtractInput struct {
	Utterance string
	// ReferenceTime anchors relative dates. Zero means now.
	ReferenceTime time.Time
	// Timeout bounds the backend call. Zero means the configured default.
	Timeout time.Duration
}

// Request is the fully rendered instruction sent to the text-generation backend.
type Request struct {
	Utterance         string
	ReferenceTime     time.Time
	ContractVersion   string
	SystemInstruction string
	UserPrompt        string
	Temperature       float64
}

// Correction records one recoverable fix applied to a backend field.
type Correction struct {
	Field  string
	From   any
	To     string
	Reason string
}

// Candidate is the decoded backend object before validation.
type Candidate map[string]any
