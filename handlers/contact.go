package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

func ContactCreate(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	contact, err := models.ContactCreate(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "contact")
		return
	}
	respondOK(c, http.StatusCreated, "message received", contact)
}

func ContactList(c *gin.Context, user *models.User) {
	contacts, err := models.ContactList(c.Request.Context())
	if err != nil {
		respondError(c, err, "contacts")
		return
	}
	respondOK(c, http.StatusOK, "contacts retrieved", contacts)
}

func ContactGet(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := models.ContactByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "contact")
		return
	}
	respondOK(c, http.StatusOK, "contact retrieved", contact)
}

func ContactUpdate(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := models.ContactUpdate(c.Request.Context(), id, func(in *models.ContactInput) error {
		// the body replaces only the fields it sets
		var body models.ContactInput
		if err := c.ShouldBindJSON(&body); err != nil {
			return models.NewValidationError("body", err.Error())
		}
		*in = body
		return nil
	})
	if err != nil {
		respondError(c, err, "contact")
		return
	}
	respondOK(c, http.StatusOK, "contact updated", contact)
}

func ContactDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := models.ContactDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, "contact")
		return
	}
	respondOK(c, http.StatusOK, "contact deleted", deleted{ID: id})
}
