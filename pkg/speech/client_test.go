package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := newClient(context.Background(), Config{LanguageCode: "vi-VN"},
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	return c
}

func TestTranscribe(t *testing.T) {
	var got struct {
		Config struct {
			Encoding        string `json:"encoding"`
			SampleRateHertz int    `json:"sampleRateHertz"`
			LanguageCode    string `json:"languageCode"`
		} `json:"config"`
		Audio struct {
			Content string `json:"content"`
		} `json:"audio"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech:recognize" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"alternatives":[{"transcript":"Call John regarding the contract","confidence":0.9}]},
			{"alternatives":[{"transcript":" tomorrow, it's urgent ","confidence":0.7}]}
		]}`))
	})

	tr, err := c.Transcribe(context.Background(), []byte("pcm"), TranscribeOptions{})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if tr.Text != "Call John regarding the contract tomorrow, it's urgent" {
		t.Errorf("unexpected transcript %q", tr.Text)
	}
	if tr.Confidence < 0.79 || tr.Confidence > 0.81 {
		t.Errorf("unexpected confidence %v", tr.Confidence)
	}

	if got.Config.LanguageCode != "vi-VN" || got.Config.Encoding != DefaultEncoding || got.Config.SampleRateHertz != DefaultSampleRateHertz {
		t.Errorf("unexpected config sent %+v", got.Config)
	}
	if got.Audio.Content != base64.StdEncoding.EncodeToString([]byte("pcm")) {
		t.Errorf("audio not base64 encoded: %q", got.Audio.Content)
	}
}

func TestTranscribe_NoSpeech(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	if _, err := c.Transcribe(context.Background(), []byte("pcm"), TranscribeOptions{}); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("expected ErrNoSpeech, got %v", err)
	}
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	})

	if _, err := c.Transcribe(context.Background(), nil, TranscribeOptions{}); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(context.Background(), Config{}); !errors.Is(err, ErrNoCredential) {
		t.Errorf("expected ErrNoCredential, got %v", err)
	}
}

func TestTranscribe_BackendError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"unavailable"}}`))
	})

	if _, err := c.Transcribe(context.Background(), []byte("pcm"), TranscribeOptions{}); !errors.Is(err, ErrRecognize) {
		t.Errorf("expected ErrRecognize, got %v", err)
	}
}
