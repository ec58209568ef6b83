package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/auth"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"

	"github.com/gin-gonic/gin"
)

const galleryFolder = "gallery"

func galleryUploads(m *media, in *models.GalleryInput) {
	m.imageWithThumb("image", &in.Image, &in.ThumbnailURL, galleryFolder)
	m.resolve("videoUrl", &in.VideoURL, storage.KindVideo, galleryFolder)
}

func GalleryCreate(c *gin.Context, user *models.User) {
	var in models.GalleryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	m := newMedia(c)
	galleryUploads(m, &in)
	if m.err != nil {
		m.fail(c, m.err, "gallery item")
		return
	}
	item, err := models.GalleryCreate(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err, "gallery item")
		return
	}
	respondOK(c, http.StatusCreated, "gallery item created", item)
}

func GalleryList(c *gin.Context) {
	items, err := models.GalleryList(c.Request.Context())
	if err != nil {
		respondError(c, err, "gallery")
		return
	}
	respondOK(c, http.StatusOK, "gallery retrieved", items)
}

func GalleryGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := models.GalleryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "gallery item")
		return
	}
	respondOK(c, http.StatusOK, "gallery item retrieved", item)
}

func GalleryUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m := newMedia(c)
	item, err := models.GalleryUpdate(c.Request.Context(), id, patchFrom(c, m, galleryUploads))
	if err != nil {
		m.fail(c, err, "gallery item")
		return
	}
	respondOK(c, http.StatusOK, "gallery item updated", item)
}

func GalleryDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.GalleryDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "gallery item")
		return
	}
	respondOK(c, http.StatusOK, "gallery item deleted", deleted{ID: id})
}

// GalleryLike is public. The liker is the session user when there is one, the client IP otherwise.
func GalleryLike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	liker := c.ClientIP()
	if user := auth.LoadSession(c).User(c); user.ID != 0 {
		liker = user.Username
	}
	item, err := models.GalleryLike(c.Request.Context(), id, liker)
	if err != nil {
		respondError(c, err, "gallery item")
		return
	}
	respondOK(c, http.StatusOK, "gallery item liked", item)
}
