package usecase

import (
	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
	"voice-task-management/internal/task"
	"voice-task-management/internal/task/repository"
	"voice-task-management/pkg/log"
	"voice-task-management/pkg/speech"
)

var _ task.UseCase = (*implUseCase)(nil)

// implUseCase is the private implementation of task.UseCase.
type implUseCase struct {
	repo        repository.Repository
	extractor   extraction.UseCase
	transcriber speech.ITranscriber
	contract    *contract.Contract
	l           log.Logger
}

// New creates a new task UseCase. transcriber may be nil, in which case
// audio input is rejected with task.ErrSpeechDisabled.
func New(
	repo repository.Repository,
	extractor extraction.UseCase,
	transcriber speech.ITranscriber,
	c *contract.Contract,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		repo:        repo,
		extractor:   extractor,
		transcriber: transcriber,
		contract:    c,
		l:           l,
	}
}
