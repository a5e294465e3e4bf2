package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
	"voice-task-management/internal/model"
	repo "voice-task-management/internal/task/repository"
	"voice-task-management/pkg/log"
	"voice-task-management/pkg/speech"
)

// fakeRepo is an in-memory repository.Repository.
type fakeRepo struct {
	mu      sync.Mutex
	tasks   map[string]model.Task
	seq     int
	err     error
	listOpt repo.ListTasksOptions
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: map[string]model.Task{}}
}

func (r *fakeRepo) CreateTask(_ context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Task{}, r.err
	}
	r.seq++
	t := model.Task{
		ID:          "task-" + string(rune('0'+r.seq)),
		Title:       opt.Title,
		Description: opt.Description,
		Priority:    opt.Priority,
		Status:      opt.Status,
		DueDate:     opt.DueDate,
		Utterance:   opt.Utterance,
		CreatedAt:   time.Date(2023, 10, 27, 9, r.seq, 0, 0, time.UTC),
	}
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeRepo) GetOneTask(_ context.Context, id string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Task{}, r.err
	}
	return r.tasks[id], nil
}

func (r *fakeRepo) ListTasks(_ context.Context, opt repo.ListTasksOptions) ([]model.Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listOpt = opt
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []model.Task
	for _, t := range r.tasks {
		if opt.Status != "" && t.Status != opt.Status {
			continue
		}
		if opt.Priority != "" && t.Priority != opt.Priority {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *fakeRepo) UpdateTask(_ context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.Task{}, r.err
	}
	t, ok := r.tasks[opt.ID]
	if !ok {
		return model.Task{}, nil
	}
	t.Title, t.Description = opt.Title, opt.Description
	t.Priority, t.Status, t.DueDate = opt.Priority, opt.Status, opt.DueDate
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeRepo) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	delete(r.tasks, id)
	return nil
}

// fakeExtractor records the last input and returns a fixed result.
type fakeExtractor struct {
	draft extraction.TaskDraft
	err   error
	got   extraction.ExtractInput
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, in extraction.ExtractInput) (extraction.TaskDraft, error) {
	f.calls++
	f.got = in
	return f.draft, f.err
}

type fakeTranscriber struct {
	text string
	err  error
	opts speech.TranscribeOptions
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, opts speech.TranscribeOptions) (speech.Transcript, error) {
	f.opts = opts
	if f.err != nil {
		return speech.Transcript{}, f.err
	}
	return speech.Transcript{Text: f.text, Confidence: 0.9}, nil
}

var errStore = errors.New("store down")

func newTestUseCase(t *testing.T, ex *fakeExtractor, tr speech.ITranscriber) (*implUseCase, *fakeRepo) {
	t.Helper()
	c, err := contract.Default()
	require.NoError(t, err)
	r := newFakeRepo()
	if ex == nil {
		ex = &fakeExtractor{}
	}
	return New(r, ex, tr, c, log.NewNop()), r
}

func strPtr(s string) *string { return &s }
