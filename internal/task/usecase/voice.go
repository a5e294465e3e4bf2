package usecase

import (
	"context"
	"fmt"
	"strings"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/task"
	repo "voice-task-management/internal/task/repository"
	"voice-task-management/pkg/speech"
)

// Analyze turns an utterance or recording into a draft without storing it.
func (uc *implUseCase) Analyze(ctx context.Context, input task.VoiceInput) (task.AnalyzeOutput, error) {
	transcript, err := uc.transcript(ctx, input)
	if err != nil {
		return task.AnalyzeOutput{}, err
	}

	draft, err := uc.extractor.Extract(ctx, extraction.ExtractInput{
		Utterance:     transcript,
		ReferenceTime: input.ReferenceTime,
		Timeout:       input.Timeout,
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.Analyze Extract: %v", err)
		return task.AnalyzeOutput{}, err
	}
	return task.AnalyzeOutput{Transcript: transcript, Draft: draft}, nil
}

// CreateFromVoice extracts a draft and stores it together with its transcript.
func (uc *implUseCase) CreateFromVoice(ctx context.Context, input task.VoiceInput) (task.VoiceOutput, error) {
	analyzed, err := uc.Analyze(ctx, input)
	if err != nil {
		return task.VoiceOutput{}, err
	}

	d := analyzed.Draft
	due, ok := parseDueDate(d.DueDate)
	if !ok {
		// Drafts only carry canonical dates.
		due = nil
	}

	t, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      d.Status,
		DueDate:     due,
		Utterance:   analyzed.Transcript,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateFromVoice CreateTask: %v", err)
		return task.VoiceOutput{}, err
	}

	uc.l.Infof(ctx, "uc.CreateFromVoice: created task %s (%s, %s)", t.ID, t.Priority, t.Status)
	return task.VoiceOutput{Transcript: analyzed.Transcript, Draft: d, Task: t}, nil
}

// transcript prefers a typed utterance and falls back to speech recognition.
func (uc *implUseCase) transcript(ctx context.Context, input task.VoiceInput) (string, error) {
	if u := strings.TrimSpace(input.Utterance); u != "" {
		return u, nil
	}
	if len(input.Audio) == 0 {
		return "", task.ErrNoInput
	}
	if uc.transcriber == nil {
		return "", task.ErrSpeechDisabled
	}

	tr, err := uc.transcriber.Transcribe(ctx, input.Audio, speech.TranscribeOptions{
		LanguageCode:    input.LanguageCode,
		Encoding:        input.AudioEncoding,
		SampleRateHertz: input.SampleRateHertz,
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.transcript Transcribe: %v", err)
		return "", fmt.Errorf("transcribe: %w", err)
	}
	uc.l.Debugf(ctx, "uc.transcript: %q (confidence %.2f)", tr.Text, tr.Confidence)
	return tr.Text, nil
}
