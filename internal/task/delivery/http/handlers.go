package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-management/pkg/response"
)

// Create godoc
// @Summary     Create a task
// @Description Creates a task from explicit fields. Priority and status default to the contract defaults.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Task data"
// @Success     201  {object} itemResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Create(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.Created(c, h.newItemResp(output.Task))
}

// List godoc
// @Summary     List tasks
// @Description Returns tasks newest first, filtered by status, priority, due day and a title/description search.
// @Tags        Tasks
// @Produce     json
// @Param       status   query string false "Canonical status"
// @Param       priority query string false "Canonical priority"
// @Param       dueDate  query string false "Due day (YYYY-MM-DD)"
// @Param       q        query string false "Case-insensitive search over title and description"
// @Param       limit    query int    false "Page size (default: 20, max: 100)"
// @Param       offset   query int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get a task
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newItemResp(output.Task))
}

// Update godoc
// @Summary     Update a task
// @Description Partial update. Omitted fields are unchanged; an empty dueDate clears it.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path string    true "Task ID"
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Update(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newItemResp(output.Task))
}

// Delete godoc
// @Summary     Delete a task
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	if err := h.uc.Delete(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// Extract godoc
// @Summary     Extract a task draft
// @Description Runs the extraction pipeline on an utterance (or transcribed audio) without storing anything.
// @Tags        Extraction
// @Accept      json,mpfd
// @Produce     json
// @Param       body body voiceReq true "Utterance or base64 audio"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Empty input or invalid backend output"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Backend unavailable or malformed output"
// @Failure     504 {object} response.Resp "Backend timed out"
// @Router      /api/v1/tasks/extract [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processVoiceReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Analyze(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Analyze: %v", err)
		response.Error(c, h.mapError(err), errorData(err))
		return
	}

	response.OK(c, h.newExtractResp(output))
}

// CreateFromVoice godoc
// @Summary     Create a task from speech
// @Description Transcribes audio when no utterance is given, extracts a draft and stores it.
// @Tags        Extraction
// @Accept      json,mpfd
// @Produce     json
// @Param       body body voiceReq true "Utterance or base64 audio"
// @Success     201 {object} voiceResp
// @Failure     400 {object} response.Resp "Empty input or invalid backend output"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Backend or speech recognition unavailable"
// @Failure     504 {object} response.Resp "Backend timed out"
// @Router      /api/v1/tasks/voice [POST]
func (h *handler) CreateFromVoice(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processVoiceReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateFromVoice(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.CreateFromVoice: %v", err)
		response.Error(c, h.mapError(err), errorData(err))
		return
	}

	response.Created(c, h.newVoiceResp(output))
}
