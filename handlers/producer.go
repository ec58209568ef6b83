package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

const producerFolder = "producers"

func producerUploads(m *media, in *models.ProducerInput) {
	m.image("image", &in.Image, producerFolder)
}

func ProducerCreate(c *gin.Context, user *models.User) {
	var in models.ProducerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	m := newMedia(c)
	producerUploads(m, &in)
	if m.err != nil {
		m.fail(c, m.err, "producer")
		return
	}
	producer, err := models.ProducerCreate(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err, "producer")
		return
	}
	respondOK(c, http.StatusCreated, "producer created", producer)
}

func ProducerList(c *gin.Context) {
	featured, ok := queryBool(c, "featured")
	if !ok {
		return
	}
	producers, err := models.ProducerList(c.Request.Context(), models.ProducerFilter{
		Level:    c.Query("level"),
		Featured: featured,
	})
	if err != nil {
		respondError(c, err, "producers")
		return
	}
	respondOK(c, http.StatusOK, "producers retrieved", producers)
}

func ProducerGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	producer, err := models.ProducerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "producer")
		return
	}
	respondOK(c, http.StatusOK, "producer retrieved", producer)
}

func ProducerSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	producer, err := models.ProducerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "producer")
		return
	}
	respondOK(c, http.StatusOK, "producer summary retrieved", producer.Summary())
}

func ProducerUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m := newMedia(c)
	producer, err := models.ProducerUpdate(c.Request.Context(), id, patchFrom(c, m, producerUploads))
	if err != nil {
		m.fail(c, err, "producer")
		return
	}
	respondOK(c, http.StatusOK, "producer updated", producer)
}

func ProducerDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.ProducerDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "producer")
		return
	}
	respondOK(c, http.StatusOK, "producer deleted", deleted{ID: id})
}
