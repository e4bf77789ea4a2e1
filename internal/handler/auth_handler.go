package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/foresight/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowLogin renders the sign-in form, or redirects home when a
// session is already established.
func (a *API) ShowLogin(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	a.renderHTML(c, http.StatusOK, "auth.html", gin.H{
		"title": "Sign in",
		"mode":  "login",
	})
}

// ShowRegister renders the sign-up form.
func (a *API) ShowRegister(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	a.renderHTML(c, http.StatusOK, "auth.html", gin.H{
		"title": "Create account",
		"mode":  "register",
	})
}

// SignIn 处理登录请求，成功后建立会话并跳转首页。
func (a *API) SignIn(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		a.renderHTML(c, http.StatusBadRequest, "auth.html", gin.H{
			"title": "Sign in",
			"mode":  "login",
			"email": email,
			"error": "Please fill in all fields",
		})
		return
	}

	user, err := a.accounts.SignIn(email, password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrCredentialsMissing) {
			status = http.StatusBadRequest
		}
		a.renderHTML(c, status, "auth.html", gin.H{
			"title": "Sign in",
			"mode":  "login",
			"email": email,
			"error": authErrorMessage(err),
		})
		return
	}

	if !a.establishSession(c, user.ID, "login", email) {
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// SignUp 处理注册请求，成功后直接建立会话。
func (a *API) SignUp(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		a.renderHTML(c, http.StatusBadRequest, "auth.html", gin.H{
			"title": "Create account",
			"mode":  "register",
			"email": email,
			"error": "Please fill in all fields",
		})
		return
	}

	user, err := a.accounts.SignUp(email, password)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, service.ErrEmailTaken) && !errors.Is(err, service.ErrCredentialsMissing) {
			status = http.StatusInternalServerError
		}
		a.renderHTML(c, status, "auth.html", gin.H{
			"title": "Create account",
			"mode":  "register",
			"email": email,
			"error": authErrorMessage(err),
		})
		return
	}

	if !a.establishSession(c, user.ID, "register", email) {
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// SignOut 清除会话，返回值不做检查。
func (a *API) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (a *API) establishSession(c *gin.Context, userID uint, mode, email string) bool {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, userID)
	if err := session.Save(); err != nil {
		title := "Sign in"
		if mode == "register" {
			title = "Create account"
		}
		a.renderHTML(c, http.StatusInternalServerError, "auth.html", gin.H{
			"title": title,
			"mode":  mode,
			"email": email,
			"error": "Could not establish session, please try again",
		})
		return false
	}
	return true
}

// authErrorMessage surfaces provider errors verbatim and keeps a
// generic notice for everything else.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrCredentialsMissing),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials):
		return err.Error()
	default:
		return "Something went wrong, please try again"
	}
}
