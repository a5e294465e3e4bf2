package speech

import "context"

// ITranscriber turns recorded audio into text.
type ITranscriber interface {
	Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (Transcript, error)
}
