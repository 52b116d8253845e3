package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mention-radar/auth"
	"mention-radar/models"
)

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type signupForm struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type authPageData struct {
	Error    string
	Email    string
	FullName string
}

func (a *App) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", authPageData{})
}

func (a *App) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", authPageData{
			Error: "Informe email e senha válidos",
			Email: form.Email,
		})
		return
	}

	_, session, err := a.Auth.SignIn(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		status := http.StatusUnauthorized
		msg := err.Error()
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("login %s: %v", form.Email, err)
			status = http.StatusInternalServerError
			msg = "Erro ao fazer login"
		}
		c.HTML(status, "login.html", authPageData{Error: msg, Email: form.Email})
		return
	}

	a.setSessionCookie(c, session.Token, int(a.Config.Auth.SessionTTL.Seconds()))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (a *App) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", authPageData{})
}

func (a *App) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", authPageData{
			Error:    "Preencha nome, email válido e senha com no mínimo 6 caracteres",
			Email:    form.Email,
			FullName: form.FullName,
		})
		return
	}

	_, session, err := a.Auth.SignUp(c.Request.Context(), form.Email, form.Password, auth.Metadata{
		FullName: form.FullName,
		Role:     models.RoleUsuario,
	})
	if err != nil {
		status := http.StatusBadRequest
		msg := err.Error()
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			status = http.StatusConflict
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
		default:
			log.Printf("signup %s: %v", form.Email, err)
			status = http.StatusInternalServerError
			msg = "Erro ao criar conta"
		}
		c.HTML(status, "signup.html", authPageData{Error: msg, Email: form.Email, FullName: form.FullName})
		return
	}

	a.setSessionCookie(c, session.Token, int(a.Config.Auth.SessionTTL.Seconds()))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (a *App) Logout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := a.Auth.SignOut(c.Request.Context(), token); err != nil {
		log.Printf("logout: %v", err)
	}
	a.Notes.Drop(token)
	a.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/login")
}
