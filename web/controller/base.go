// Package controller provides the HTTP request handlers of the drivelog
// panel: authentication, experience CRUD and the statistics endpoints.
package controller

import (
	"net/http"

	"github.com/Bayrii/drivelog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the authentication gate.
type BaseController struct{}

// checkLogin is a middleware that verifies user authentication and handles
// unauthorized access.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "please log in again")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, "/")
		}
		c.Abort()
	} else {
		c.Next()
	}
}
