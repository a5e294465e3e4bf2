package openai

import "time"

const (
	// DefaultBaseURL is the default DeepSeek endpoint; any OpenAI-compatible
	// chat completions endpoint works.
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the default model to use
	DefaultModel = "deepseek-chat"

	// QwenBaseURL is the OpenAI-compatible DashScope endpoint.
	QwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second

	roleSystem = "system"
	roleUser   = "user"

	responseFormatJSON = "json_object"
)
