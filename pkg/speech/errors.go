package speech

import "errors"

var (
	ErrEmptyAudio   = errors.New("speech: audio is empty")
	ErrNoSpeech     = errors.New("speech: no speech recognized")
	ErrNoCredential = errors.New("speech: api key or credentials file is required")
	ErrRecognize    = errors.New("speech: recognition request failed")
)
