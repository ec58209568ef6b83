package handlers

import (
	"errors"
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/auth"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "email and password are required", err)
		return
	}
	user, err := models.UserLogin(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, Response{Message: err.Error(), Error: err.Error()})
		return
	}
	if err != nil {
		respondError(c, err, "login")
		return
	}
	if err = auth.LoadSession(c).LoginUser(&user); err != nil {
		internalError(c, "could not create session", err)
		return
	}
	respondOK(c, http.StatusOK, "login successful", user)
}

func AdminLogout(c *gin.Context) {
	if err := auth.LoadSession(c).LogoutUser(); err != nil {
		internalError(c, "could not end session", err)
		return
	}
	respondOK(c, http.StatusOK, "logged out", nil)
}

// AdminCreate adds an account. Only a superadmin may create another superadmin.
func AdminCreate(c *gin.Context, user *models.User) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if in.Role == models.RoleSuperAdmin && !user.IsSuperAdmin() {
		c.JSON(http.StatusForbidden, Response{Message: "access denied", Error: "only a superadmin can create a superadmin"})
		return
	}
	created, err := models.UserCreate(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "admin")
		return
	}
	respondOK(c, http.StatusCreated, "admin created", created)
}

func AdminUsers(c *gin.Context, user *models.User) {
	users, err := models.UserList(c.Request.Context())
	if err != nil {
		respondError(c, err, "users")
		return
	}
	respondOK(c, http.StatusOK, "users retrieved", users)
}
