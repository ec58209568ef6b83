package auth

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIdKey = "id"

	rememberMeMaxAge = 30 * 86400
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

// Options are the cookie settings for every session
func Options(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   config.TLS_DOMAINS != "",
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Session) LoginUser(user *models.User) error {
	maxAge := config.SESSION_MAX_AGE
	if user.RememberMe && maxAge < rememberMeMaxAge {
		maxAge = rememberMeMaxAge
	}
	s.Clear()
	s.Set(userIdKey, user.ID)
	s.Options(Options(maxAge))
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(Options(-1))
	return s.Save()
}

// User returns the logged in user, ID is 0 when there is none
func (s *Session) User(c *gin.Context) (user models.User) {
	id, ok := s.Get(userIdKey).(uint64)
	if !ok || id == 0 {
		return
	}
	user, err := models.UserByID(c.Request.Context(), id)
	if err != nil {
		return models.User{}
	}
	return
}
