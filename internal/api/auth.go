package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/core/binder"
	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/core/session"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/middleware"
)

type loginRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Password     string `json:"password"`
}

// secret prefers the pre-hashed form sent by the dashboard.
func (r loginRequest) secret() string {
	if s := strings.TrimSpace(r.PasswordHash); s != "" {
		return s
	}
	return r.Password
}

type loginResponse struct {
	OK bool `json:"ok"`
	auth.Token
}

type okResponse struct {
	OK bool `json:"ok"`
}

type sessionResponse struct {
	OK        bool      `json:"ok"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (a *API) requireSession() handler.Middleware[Context] {
	return middleware.SessionWithConfig[Context](middleware.SessionConfig{
		Manager:   a.sessions,
		Transport: a.transport,
		Logger:    a.logger,
	})
}

// requireAdmin accepts a bearer token when one is sent, and the session
// cookie plus CSRF header otherwise.
func (a *API) requireAdmin() []handler.Middleware[Context] {
	return []handler.Middleware[Context]{
		middleware.JWTWithConfig[Context](middleware.JWTConfig{
			Service: a.verifier.Tokens(),
			Skip:    middleware.SkipWithoutBearer,
		}),
		middleware.SessionWithConfig[Context](middleware.SessionConfig{
			Manager:   a.sessions,
			Transport: a.transport,
			Logger:    a.logger,
			Skip:      middleware.HasJWTClaims,
		}),
	}
}

func (a *API) verify(ctx Context) (auth.Token, error) {
	var req loginRequest
	if err := binder.JSON(ctx.Request(), &req); err != nil {
		return auth.Token{}, err
	}
	secret := req.secret()
	if secret == "" {
		return auth.Token{}, errMissingSecret
	}
	return a.verifier.Verify(req.Username, secret)
}

// login verifies credentials, opens a session and sets its cookies. The
// admin bearer token is returned in the body for API clients.
func (a *API) login(ctx Context) handler.Response {
	tok, err := a.verify(ctx)
	if err != nil {
		return response.Error(err)
	}

	sessTok, err := a.verifier.IssueSession()
	if err != nil {
		return response.Error(err)
	}
	sess, err := a.sessions.Create(ctx, sessTok.AccessToken, time.Duration(sessTok.ExpiresIn)*time.Second)
	if err != nil {
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "admin logged in", logger.Component("auth"), logger.Action("login"))
	return a.withSessionCookies(sess, response.JSON(loginResponse{OK: true, Token: tok}))
}

// token is the bearer-only login kept for scripts.
func (a *API) token(ctx Context) handler.Response {
	tok, err := a.verify(ctx)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(tok)
}

func (a *API) refresh(ctx Context) handler.Response {
	current, _ := middleware.GetSession(ctx)

	sessTok, err := a.verifier.IssueSession()
	if err != nil {
		return response.Error(err)
	}
	next, err := a.sessions.Refresh(ctx, current.ID, sessTok.AccessToken, time.Duration(sessTok.ExpiresIn)*time.Second)
	if err != nil {
		return response.Error(err)
	}
	return a.withSessionCookies(next, response.JSON(okResponse{OK: true}))
}

func (a *API) logout(ctx Context) handler.Response {
	current, _ := middleware.GetSession(ctx)
	if err := a.sessions.Revoke(ctx, current.ID); err != nil {
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "admin logged out", logger.Component("auth"), logger.Action("logout"))
	resp := response.JSON(okResponse{OK: true})
	return func(w http.ResponseWriter, r *http.Request) error {
		a.transport.Clear(w, r)
		return resp(w, r)
	}
}

func (a *API) currentSession(ctx Context) handler.Response {
	current, _ := middleware.GetSession(ctx)
	return response.JSON(sessionResponse{OK: true, ExpiresAt: current.ExpiresAt})
}

func (a *API) withSessionCookies(sess session.Session, next handler.Response) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := a.transport.Set(w, r, sess); err != nil {
			return err
		}
		return next(w, r)
	}
}
