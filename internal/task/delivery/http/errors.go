package http

import (
	"errors"
	"net/http"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/task"
	pkgErrors "voice-task-management/pkg/errors"
	"voice-task-management/pkg/speech"
)

var errInternal = pkgErrors.NewHTTPError(http.StatusInternalServerError, "internal server error")

// mapError translates domain and extraction errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidDueDate),
		errors.Is(err, task.ErrNoInput),
		errors.Is(err, task.ErrSpeechDisabled):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, speech.ErrEmptyAudio), errors.Is(err, speech.ErrNoSpeech):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, speech.ErrRecognize):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, speech.ErrRecognize.Error())

	case errors.Is(err, extraction.ErrEmptyInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, extraction.ErrEmptyInput.Error())
	case errors.Is(err, extraction.ErrBackendTimeout):
		return pkgErrors.NewHTTPError(http.StatusGatewayTimeout, extraction.ErrBackendTimeout.Error())
	case errors.Is(err, extraction.ErrBackendUnavailable),
		errors.Is(err, extraction.ErrMalformedOutput),
		errors.Is(err, extraction.ErrSchemaMismatch):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, kindOf(err).Error())
	case errors.Is(err, extraction.ErrValidation):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, extraction.ErrValidation.Error())
	}
	return errInternal
}

// errorData returns extra response payload for extraction failures.
func errorData(err error) map[string]any {
	data := map[string]any{}
	var ee *extraction.Error
	if errors.As(err, &ee) {
		data["stage"] = ee.Stage
	}
	var ve *extraction.ValidationError
	if errors.As(err, &ve) {
		data["fields"] = ve.FieldNames()
	}
	return data
}

func kindOf(err error) error {
	var ee *extraction.Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return err
}
