package http

import (
	"errors"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxAudioBytes bounds multipart audio uploads (Speech-to-Text v1 sync limit).
const maxAudioBytes = 10 << 20

var (
	errMissingID        = errors.New("id is required")
	errInvalidReference = errors.New("referenceTimestamp must be RFC3339")
	errAudioTooLarge    = errors.New("audio exceeds 10MB")
)

// processCreateReq binds and validates the create task request body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processUpdateReq binds the path ID and the partial update body.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errMissingID
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processVoiceReq binds a JSON or multipart voice request.
func (h *handler) processVoiceReq(c *gin.Context) (voiceReq, error) {
	var req voiceReq

	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBind(&req); err != nil {
			return req, err
		}
		audio, err := readAudioPart(c)
		if err != nil {
			return req, err
		}
		req.Audio = audio
	} else if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}

	req.Utterance = strings.TrimSpace(req.Utterance)
	if req.ReferenceTimestamp != "" {
		ref, err := time.Parse(time.RFC3339, req.ReferenceTimestamp)
		if err != nil {
			return req, errInvalidReference
		}
		req.referenceTime = ref
	}
	return req, req.validate()
}

func readAudioPart(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("audio")
	if errors.Is(err, nethttp.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > maxAudioBytes {
		return nil, errAudioTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxAudioBytes))
}
