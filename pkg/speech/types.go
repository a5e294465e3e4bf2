package speech

// Config selects credentials and recognition defaults. APIKey wins over
// CredentialsPath when both are set.
type Config struct {
	APIKey          string
	CredentialsPath string
	LanguageCode    string
	Encoding        string
	SampleRateHertz int
}

// TranscribeOptions overrides Config defaults for a single call.
type TranscribeOptions struct {
	LanguageCode    string
	Encoding        string
	SampleRateHertz int
}

// Transcript is the best alternative of every recognized segment joined
// with a space.
type Transcript struct {
	Text       string
	Confidence float64
}
