package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"vgsales/internal/engine"
	"vgsales/internal/logging"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// mapError classifies err into a status code and a response body.
func mapError(err error) (int, ErrorResponse) {
	var ie *engine.InvalidRegionError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ie):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid region",
			Message: fmt.Sprintf("region %q is not available for the %s view", ie.Label, ie.View),
			Code:    "REGION001",
		}
	case errors.Is(err, errUnknownView):
		return http.StatusNotFound, ErrorResponse{
			Error:   "unknown view",
			Message: "view must be one of: title, genre",
			Code:    "VIEW001",
		}
	case errors.Is(err, errUnknownFormat):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "unknown format",
			Message: "format must be one of: json, csv, arrow",
			Code:    "FMT001",
		}
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		return he.Code, ErrorResponse{
			Error:   http.StatusText(he.Code),
			Message: msg,
			Code:    fmt.Sprintf("HTTP%d", he.Code),
		}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Error:   "internal error",
		Message: "the request could not be completed",
		Code:    "INT001",
	}
}

// errorHandler logs the technical error and replies with a JSON ErrorResponse.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	logger := logging.FromContext(c.Request().Context())
	ev := logger.Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.Error()
	}
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Int("status", status).
		Str("code", body.Code).
		Msg("request error")

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logger.Error().Err(err).Msg("write error response")
	}
}
