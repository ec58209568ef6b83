package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

const artistFolder = "artists"

func artistUploads(m *media, in *models.ArtistInput) {
	m.image("imageUrl", &in.ImageURL, artistFolder)
}

func ArtistCreate(c *gin.Context, user *models.User) {
	var in models.ArtistInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	m := newMedia(c)
	artistUploads(m, &in)
	if m.err != nil {
		m.fail(c, m.err, "artist")
		return
	}
	artist, err := models.ArtistCreate(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err, "artist")
		return
	}
	respondOK(c, http.StatusCreated, "artist created", artist)
}

func ArtistList(c *gin.Context) {
	artists, err := models.ArtistList(c.Request.Context())
	if err != nil {
		respondError(c, err, "artists")
		return
	}
	respondOK(c, http.StatusOK, "artists retrieved", artists)
}

func ArtistGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	artist, err := models.ArtistByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "artist")
		return
	}
	respondOK(c, http.StatusOK, "artist retrieved", artist)
}

func ArtistUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m := newMedia(c)
	artist, err := models.ArtistUpdate(c.Request.Context(), id, patchFrom(c, m, artistUploads))
	if err != nil {
		m.fail(c, err, "artist")
		return
	}
	respondOK(c, http.StatusOK, "artist updated", artist)
}

func ArtistDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.ArtistDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "artist")
		return
	}
	respondOK(c, http.StatusOK, "artist deleted", deleted{ID: id})
}
