package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"

	"github.com/gin-gonic/gin"
)

const musicFolder = "music"

type MusicListRequest struct {
	Genre  string `form:"genre"`
	Search string `form:"search"`
	Sort   string `form:"sort" binding:"omitempty,oneof=newest oldest popular title"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

func musicUploads(m *media, in *models.MusicInput) {
	m.image("coverImageUrl", &in.CoverImageURL, musicFolder)
	m.resolve("audioUrl", &in.AudioURL, storage.KindAudio, musicFolder)
}

func MusicCreate(c *gin.Context, user *models.User) {
	var in models.MusicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	m := newMedia(c)
	musicUploads(m, &in)
	if m.err != nil {
		m.fail(c, m.err, "music")
		return
	}
	music, err := models.MusicCreate(c.Request.Context(), in)
	if err != nil {
		m.fail(c, err, "music")
		return
	}
	respondOK(c, http.StatusCreated, "music created", music)
}

func MusicList(c *gin.Context) {
	var req MusicListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid query", err)
		return
	}
	page, err := models.MusicList(c.Request.Context(), models.MusicQuery{
		Genre:  req.Genre,
		Search: req.Search,
		Sort:   req.Sort,
		Limit:  req.Limit,
		Page:   req.Page,
	})
	if err != nil {
		respondError(c, err, "music")
		return
	}
	respondOK(c, http.StatusOK, "music retrieved", page)
}

func MusicGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	music, err := models.MusicByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "music")
		return
	}
	respondOK(c, http.StatusOK, "music retrieved", music)
}

func MusicUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m := newMedia(c)
	music, err := models.MusicUpdate(c.Request.Context(), id, patchFrom(c, m, musicUploads))
	if err != nil {
		m.fail(c, err, "music")
		return
	}
	respondOK(c, http.StatusOK, "music updated", music)
}

func MusicDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.MusicDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "music")
		return
	}
	respondOK(c, http.StatusOK, "music deleted", deleted{ID: id})
}

func MusicPlay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	music, err := models.MusicPlay(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "music")
		return
	}
	respondOK(c, http.StatusOK, "play counted", music)
}
