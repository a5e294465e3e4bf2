package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-task-management/config"
	"voice-task-management/internal/extraction"
	"voice-task-management/internal/middleware"
	"voice-task-management/internal/model"
	"voice-task-management/internal/task"
	"voice-task-management/pkg/log"
	"voice-task-management/pkg/speech"
)

// fakeUseCase returns canned results and records the inputs it saw.
type fakeUseCase struct {
	err error

	createIn task.CreateInput
	listIn   task.ListInput
	updateIn task.UpdateInput
	voiceIn  task.VoiceInput
}

var sampleTask = model.Task{
	ID:        "0b8f5c1e-7d7e-4a3b-9c1d-2f6a1e4b5c6d",
	Title:     "Call John",
	Priority:  "High",
	Status:    "To Do",
	DueDate:   func() *time.Time { t := time.Date(2023, 10, 28, 0, 0, 0, 0, time.UTC); return &t }(),
	CreatedAt: time.Date(2023, 10, 27, 9, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2023, 10, 27, 9, 0, 0, 0, time.UTC),
}

var sampleDraft = extraction.TaskDraft{Title: "Call John", Priority: "High", DueDate: "2023-10-28", Status: "To Do"}

func (f *fakeUseCase) Create(_ context.Context, in task.CreateInput) (task.CreateOutput, error) {
	f.createIn = in
	return task.CreateOutput{Task: sampleTask}, f.err
}

func (f *fakeUseCase) List(_ context.Context, in task.ListInput) (task.ListOutput, error) {
	f.listIn = in
	return task.ListOutput{Tasks: []model.Task{sampleTask}, Total: 1, Limit: 20}, f.err
}

func (f *fakeUseCase) Detail(_ context.Context, _ string) (task.DetailOutput, error) {
	return task.DetailOutput{Task: sampleTask}, f.err
}

func (f *fakeUseCase) Update(_ context.Context, in task.UpdateInput) (task.UpdateOutput, error) {
	f.updateIn = in
	return task.UpdateOutput{Task: sampleTask}, f.err
}

func (f *fakeUseCase) Delete(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeUseCase) Analyze(_ context.Context, in task.VoiceInput) (task.AnalyzeOutput, error) {
	f.voiceIn = in
	return task.AnalyzeOutput{Transcript: in.Utterance, Draft: sampleDraft}, f.err
}

func (f *fakeUseCase) CreateFromVoice(_ context.Context, in task.VoiceInput) (task.VoiceOutput, error) {
	f.voiceIn = in
	return task.VoiceOutput{Transcript: in.Utterance, Draft: sampleDraft, Task: sampleTask}, f.err
}

func newTestRouter(uc task.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(log.NewNop(), config.RateLimitConfig{Enabled: false})
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), mw)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreate(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "Call John", "priority": "high", "dueDate": "2023-10-28"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, task.CreateInput{Title: "Call John", Priority: "high", DueDate: "2023-10-28"}, uc.createIn)

	var data struct {
		Task map[string]any `json:"task"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "2023-10-28", data.Task["dueDate"])
	assert.Equal(t, "2023-10-27T09:00:00Z", data.Task["createdAt"])

	w = do(r, http.MethodPost, "/api/v1/tasks", map[string]string{"priority": "High"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "title is required by binding")
}

func TestList(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	w := do(r, http.MethodGet, "/api/v1/tasks?status=Done&priority=Low&q=john&dueDate=2023-10-28&limit=5&offset=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, task.ListInput{Status: "Done", Priority: "Low", Search: "john", DueDate: "2023-10-28", Limit: 5, Offset: 10}, uc.listIn)

	var data struct {
		Tasks []map[string]any `json:"tasks"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, 1, data.Total)
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, "Call John", data.Tasks[0]["title"])
}

func TestUpdate_PartialBody(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	w := do(r, http.MethodPut, "/api/v1/tasks/abc", map[string]string{"status": "Done"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", uc.updateIn.ID)
	require.NotNil(t, uc.updateIn.Status)
	assert.Equal(t, "Done", *uc.updateIn.Status)
	assert.Nil(t, uc.updateIn.Title)
	assert.Nil(t, uc.updateIn.DueDate)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		method   string
		path     string
		body     any
		wantCode int
	}{
		{name: "not found", err: task.ErrTaskNotFound, method: http.MethodGet, path: "/api/v1/tasks/x", wantCode: http.StatusNotFound},
		{name: "delete not found", err: task.ErrTaskNotFound, method: http.MethodDelete, path: "/api/v1/tasks/x", wantCode: http.StatusNotFound},
		{name: "invalid priority", err: task.ErrInvalidPriority, method: http.MethodPost, path: "/api/v1/tasks", body: map[string]string{"title": "x"}, wantCode: http.StatusBadRequest},
		{name: "store failure", err: assert.AnError, method: http.MethodGet, path: "/api/v1/tasks", wantCode: http.StatusInternalServerError},
		{
			name: "backend timeout", method: http.MethodPost, path: "/api/v1/tasks/extract", body: map[string]string{"utterance": "call"},
			err:      extraction.NewError(extraction.ErrBackendTimeout, extraction.StageInvoke, context.DeadlineExceeded),
			wantCode: http.StatusGatewayTimeout,
		},
		{
			name: "backend unavailable", method: http.MethodPost, path: "/api/v1/tasks/extract", body: map[string]string{"utterance": "call"},
			err:      extraction.NewError(extraction.ErrBackendUnavailable, extraction.StageInvoke, assert.AnError),
			wantCode: http.StatusBadGateway,
		},
		{
			name: "malformed output", method: http.MethodPost, path: "/api/v1/tasks/voice", body: map[string]string{"utterance": "call"},
			err:      extraction.NewError(extraction.ErrMalformedOutput, extraction.StageParse, assert.AnError),
			wantCode: http.StatusBadGateway,
		},
		{
			name: "validation", method: http.MethodPost, path: "/api/v1/tasks/extract", body: map[string]string{"utterance": "call"},
			err: extraction.NewError(extraction.ErrValidation, extraction.StageValidate,
				&extraction.ValidationError{Fields: []extraction.FieldError{{Field: "title", Reason: "required"}}}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "speech recognition failed", method: http.MethodPost, path: "/api/v1/tasks/voice", body: map[string]any{"audio": []byte("pcm")},
			err:      speech.ErrRecognize,
			wantCode: http.StatusBadGateway,
		},
		{
			name: "speech disabled", method: http.MethodPost, path: "/api/v1/tasks/voice", body: map[string]any{"audio": []byte("pcm")},
			err:      task.ErrSpeechDisabled,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeUseCase{err: tt.err})
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).ErrorCode)
		})
	}
}

func TestExtract_ValidationFieldsInPayload(t *testing.T) {
	err := extraction.NewError(extraction.ErrValidation, extraction.StageValidate,
		&extraction.ValidationError{Fields: []extraction.FieldError{{Field: "title", Reason: "required"}}})
	r := newTestRouter(&fakeUseCase{err: err})

	w := do(r, http.MethodPost, "/api/v1/tasks/extract", map[string]string{"utterance": "call"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var data struct {
		Stage  string   `json:"stage"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "validate", data.Stage)
	assert.Equal(t, []string{"title"}, data.Fields)
}

func TestExtract_JSON(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/tasks/extract", map[string]any{
		"utterance":          "  Call John tomorrow, high priority ",
		"referenceTimestamp": "2023-10-27T09:00:00Z",
		"timeoutMs":          1500,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Call John tomorrow, high priority", uc.voiceIn.Utterance)
	assert.Equal(t, time.Date(2023, 10, 27, 9, 0, 0, 0, time.UTC), uc.voiceIn.ReferenceTime)
	assert.Equal(t, 1500*time.Millisecond, uc.voiceIn.Timeout)

	var data struct {
		Draft extraction.TaskDraft `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, sampleDraft, data.Draft)
}

func TestExtract_BadRequests(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	w := do(r, http.MethodPost, "/api/v1/tasks/extract", map[string]any{"utterance": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/tasks/extract", map[string]any{"utterance": "call", "referenceTimestamp": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errInvalidReference.Error(), decode(t, w).Message)

	w = do(r, http.MethodPost, "/api/v1/tasks/extract", map[string]any{"utterance": "call", "timeoutMs": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFromVoice_Multipart(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("encoding", "FLAC"))
	require.NoError(t, mw.WriteField("sampleRateHertz", "44100"))
	fw, err := mw.CreateFormFile("audio", "note.flac")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("fake-audio"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/voice", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []byte("fake-audio"), uc.voiceIn.Audio)
	assert.Equal(t, "FLAC", uc.voiceIn.AudioEncoding)
	assert.Equal(t, 44100, uc.voiceIn.SampleRateHertz)
}
