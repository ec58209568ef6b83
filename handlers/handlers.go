package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Response is the envelope of every reply
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type deleted struct {
	ID uint64 `json:"id"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func badRequest(c *gin.Context, message string, err error) {
	resp := Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondError maps an operation failure onto a status code. what names the thing the request was about.
func respondError(c *gin.Context, err error, what string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{Message: "validation failed", Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Message: what + " not found", Error: err.Error()})
	case errors.Is(err, storage.ErrUpstream):
		internalError(c, storage.ErrUpstream.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		internalError(c, "request timed out", err)
	default:
		internalError(c, "could not process "+what, err)
	}
}

// internalError hides the failure detail unless in debug mode
func internalError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	resp := Response{Message: message}
	if config.DEBUG_MODE {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id", nil)
		return 0, false
	}
	return id, true
}

// queryBool reads an optional true/false query parameter
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "invalid "+name, err)
		return nil, false
	}
	return &value, true
}

var newUploader = storage.NewUploader

// media resolves inline payloads of one request. The first failure is kept and later calls do nothing.
type media struct {
	ctx context.Context
	up  *storage.Uploader
	err error
}

func newMedia(c *gin.Context) *media {
	return &media{ctx: c.Request.Context(), up: newUploader()}
}

func (m *media) check(field string, err error) {
	if err != nil && errors.Is(err, storage.ErrInvalidMedia) {
		err = models.NewValidationError(field, err.Error())
	}
	m.err = err
}

func (m *media) resolve(field string, value *string, kind storage.Kind, folder string) {
	if m.err == nil {
		m.check(field, m.up.Resolve(m.ctx, value, kind, folder))
	}
}

func (m *media) image(field string, value *string, folder string) {
	m.resolve(field, value, storage.KindImage, folder)
}

func (m *media) imageWithThumb(field string, value, thumb *string, folder string) {
	if m.err == nil {
		m.check(field, m.up.ResolveImage(m.ctx, value, thumb, folder))
	}
}

// fail removes what the request already uploaded and answers err
func (m *media) fail(c *gin.Context, err error, what string) {
	m.up.Discard(m.ctx)
	respondError(c, err, what)
}

// patchFrom merges the request body into the stored input, then runs the media uploads
func patchFrom[I any](c *gin.Context, m *media, uploads func(*media, *I)) func(*I) error {
	return func(in *I) error {
		body, err := c.GetRawData()
		if err != nil {
			return models.NewValidationError("body", err.Error())
		}
		if err = models.MergePatch[I](body)(in); err != nil {
			return err
		}
		uploads(m, in)
		return m.err
	}
}
