package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

const filmmakerFolder = "filmmakers"

func filmmakerUploads(m *media, in *models.FilmmakerInput) {
	m.image("image", &in.Image, filmmakerFolder)
}

func FilmmakerCreate(c *gin.Context, user *models.User) {
	var in models.FilmmakerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	m := newMedia(c)
	filmmakerUploads(m, &in)
	if m.err != nil {
		m.fail(c, m.err, "filmmaker")
		return
	}
	filmmaker, err := models.FilmmakerCreate(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err, "filmmaker")
		return
	}
	respondOK(c, http.StatusCreated, "filmmaker created", filmmaker)
}

func FilmmakerList(c *gin.Context) {
	active, ok := queryBool(c, "isActive")
	if !ok {
		return
	}
	filmmakers, err := models.FilmmakerList(c.Request.Context(), models.FilmmakerFilter{
		Specialization: c.Query("specialization"),
		IsActive:       active,
	})
	if err != nil {
		respondError(c, err, "filmmakers")
		return
	}
	respondOK(c, http.StatusOK, "filmmakers retrieved", filmmakers)
}

func FilmmakerGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	filmmaker, err := models.FilmmakerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "filmmaker")
		return
	}
	respondOK(c, http.StatusOK, "filmmaker retrieved", filmmaker)
}

func FilmmakerUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m := newMedia(c)
	filmmaker, err := models.FilmmakerUpdate(c.Request.Context(), id, patchFrom(c, m, filmmakerUploads))
	if err != nil {
		m.fail(c, err, "filmmaker")
		return
	}
	respondOK(c, http.StatusOK, "filmmaker updated", filmmaker)
}

func FilmmakerDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.FilmmakerDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "filmmaker")
		return
	}
	respondOK(c, http.StatusOK, "filmmaker deleted", deleted{ID: id})
}
