package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	speechapi "google.golang.org/api/speech/v1"
)

const (
	DefaultLanguageCode    = "en-US"
	DefaultEncoding        = "LINEAR16"
	DefaultSampleRateHertz = 16000
)

// Client wraps the Google Cloud Speech-to-Text v1 API.
type Client struct {
	service  *speechapi.Service
	defaults TranscribeOptions
}

// New creates a Client from Config, authenticating with an API key or a
// Service Account JSON file.
func New(ctx context.Context, cfg Config) (*Client, error) {
	switch {
	case cfg.APIKey != "":
		return newClient(ctx, cfg, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsPath != "":
		data, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return NewClientFromCredentialsJSON(ctx, cfg, data)
	default:
		return nil, ErrNoCredential
	}
}

// NewClientFromCredentialsJSON creates a Client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, cfg Config, credentialsJSON []byte) (*Client, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, speechapi.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}
	return newClient(ctx, cfg, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
}

func newClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	svc, err := speechapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech service: %w", err)
	}

	defaults := TranscribeOptions{
		LanguageCode:    cfg.LanguageCode,
		Encoding:        cfg.Encoding,
		SampleRateHertz: cfg.SampleRateHertz,
	}
	if defaults.LanguageCode == "" {
		defaults.LanguageCode = DefaultLanguageCode
	}
	if defaults.Encoding == "" {
		defaults.Encoding = DefaultEncoding
	}
	if defaults.SampleRateHertz == 0 {
		defaults.SampleRateHertz = DefaultSampleRateHertz
	}

	return &Client{service: svc, defaults: defaults}, nil
}

// Transcribe runs synchronous recognition on short audio (about one minute).
func (c *Client) Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (Transcript, error) {
	if len(audio) == 0 {
		return Transcript{}, ErrEmptyAudio
	}

	opts = c.withDefaults(opts)
	req := &speechapi.RecognizeRequest{
		Config: &speechapi.RecognitionConfig{
			Encoding:                   opts.Encoding,
			SampleRateHertz:            int64(opts.SampleRateHertz),
			LanguageCode:               opts.LanguageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechapi.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

	resp, err := c.service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %w", ErrRecognize, err)
	}

	var parts []string
	var confidence float64
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		best := r.Alternatives[0]
		if text := strings.TrimSpace(best.Transcript); text != "" {
			parts = append(parts, text)
			confidence += best.Confidence
		}
	}
	if len(parts) == 0 {
		return Transcript{}, ErrNoSpeech
	}

	return Transcript{
		Text:       strings.Join(parts, " "),
		Confidence: confidence / float64(len(parts)),
	}, nil
}

func (c *Client) withDefaults(opts TranscribeOptions) TranscribeOptions {
	if opts.LanguageCode == "" {
		opts.LanguageCode = c.defaults.LanguageCode
	}
	if opts.Encoding == "" {
		opts.Encoding = c.defaults.Encoding
	}
	if opts.SampleRateHertz == 0 {
		opts.SampleRateHertz = c.defaults.SampleRateHertz
	}
	return opts
}
