package http

import (
	"time"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/model"
	"voice-task-management/internal/task"
	"voice-task-management/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Description string `json:"description" binding:"max=4000"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
}

func (r createReq) toInput() task.CreateInput {
	return task.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// ---

type listReq struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Search   string `form:"q"`
	DueDate  string `form:"dueDate"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func (r listReq) toInput() task.ListInput {
	return task.ListInput{
		Status:   r.Status,
		Priority: r.Priority,
		Search:   r.Search,
		DueDate:  r.DueDate,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// ---

type updateReq struct {
	ID          string  `json:"-"`
	Title       *string `json:"title"       binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=4000"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

func (r updateReq) toInput() task.UpdateInput {
	return task.UpdateInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// ---

// voiceReq is shared by the extract and voice endpoints. Audio is base64
// in JSON bodies or an "audio" file part in multipart forms.
type voiceReq struct {
	Utterance          string `json:"utterance"          form:"utterance"`
	Audio              []byte `json:"audio"              form:"-"`
	Encoding           string `json:"encoding"           form:"encoding"`
	SampleRateHertz    int    `json:"sampleRateHertz"    form:"sampleRateHertz"`
	LanguageCode       string `json:"languageCode"       form:"languageCode"`
	ReferenceTimestamp string `json:"referenceTimestamp" form:"referenceTimestamp"`
	TimeoutMs          int    `json:"timeoutMs"          form:"timeoutMs" binding:"gte=0"`

	referenceTime time.Time
}

func (r voiceReq) validate() error {
	if r.Utterance == "" && len(r.Audio) == 0 {
		return task.ErrNoInput
	}
	return nil
}

func (r voiceReq) toInput() task.VoiceInput {
	return task.VoiceInput{
		Utterance:       r.Utterance,
		Audio:           r.Audio,
		AudioEncoding:   r.Encoding,
		SampleRateHertz: r.SampleRateHertz,
		LanguageCode:    r.LanguageCode,
		ReferenceTime:   r.referenceTime,
		Timeout:         time.Duration(r.TimeoutMs) * time.Millisecond,
	}
}

// --- Response DTOs ---

type taskResp struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	DueDate     *response.Date    `json:"dueDate,omitempty"`
	Utterance   string            `json:"utterance,omitempty"`
	CreatedAt   response.DateTime `json:"createdAt"`
	UpdatedAt   response.DateTime `json:"updatedAt"`
}

func newTaskResp(t model.Task) taskResp {
	resp := taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Utterance:   t.Utterance,
		CreatedAt:   response.DateTime(t.CreatedAt),
		UpdatedAt:   response.DateTime(t.UpdatedAt),
	}
	if t.DueDate != nil {
		d := response.Date(t.DueDate.UTC())
		resp.DueDate = &d
	}
	return resp
}

type itemResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newItemResp(t model.Task) itemResp {
	return itemResp{Task: newTaskResp(t)}
}

type listResp struct {
	Tasks  []taskResp `json:"tasks"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{
		Tasks:  tasks,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type extractResp struct {
	Transcript string               `json:"transcript"`
	Draft      extraction.TaskDraft `json:"draft"`
}

func (h *handler) newExtractResp(out task.AnalyzeOutput) extractResp {
	return extractResp{Transcript: out.Transcript, Draft: out.Draft}
}

type voiceResp struct {
	Transcript string               `json:"transcript"`
	Draft      extraction.TaskDraft `json:"draft"`
	Task       taskResp             `json:"task"`
}

func (h *handler) newVoiceResp(out task.VoiceOutput) voiceResp {
	return voiceResp{
		Transcript: out.Transcript,
		Draft:      out.Draft,
		Task:       newTaskResp(out.Task),
	}
}
