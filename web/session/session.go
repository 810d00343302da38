// Package session wraps the cookie-backed browser session: the logged-in
// user and the per-session identifier map are both kept here and are
// always discarded together.
package session

import (
	"encoding/gob"

	"github.com/Bayrii/drivelog/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserKey = "LOGIN_USER"
	idMapKey     = "ID_MAP"
)

func init() {
	gob.Register(model.User{})
	gob.Register(IDMap{})
}

// IDMap is the session-lifetime bidirectional mapping between internal
// record ids and the opaque codes handed out in their place. It is derived
// state: ownership is always re-checked at the store, so losing the map
// (logout, expiry) only invalidates codes, never grants or revokes access.
type IDMap struct {
	Forward map[string]string
	Reverse map[string]int
}

// NewIDMap returns an empty mapping.
func NewIDMap() *IDMap {
	return &IDMap{
		Forward: make(map[string]string),
		Reverse: make(map[string]int),
	}
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, *user)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// GetIDMap returns the session's identifier map, creating it on first use.
func GetIDMap(c *gin.Context) *IDMap {
	s := sessions.Default(c)
	if obj := s.Get(idMapKey); obj != nil {
		if m, ok := obj.(IDMap); ok {
			return &m
		}
	}
	return NewIDMap()
}

// SaveIDMap writes the identifier map back into the session. Must be called
// after minting new codes; reads don't need it.
func SaveIDMap(c *gin.Context, m *IDMap) error {
	s := sessions.Default(c)
	s.Set(idMapKey, *m)
	return s.Save()
}

// ClearSession drops the login identity and the identifier map together.
// Codes minted in this session stop resolving from here on.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie("drivelog", "", -1, "/", "", false, true)
	return nil
}
