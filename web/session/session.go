// Package session resolves browser sessions for the page routes. The
// credential lives in the access_token cookie; one-shot flash messages live
// in the gin-contrib/sessions cookie store.
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/logger"
)

const (
	AccessTokenCookie = "access_token"
	LoginPage         = "/auth/login-page"
	StoreName         = "todoapp"

	sessionExpired = "Your session has expired, please log in again."
)

// Resolver turns a token into an identity.
type Resolver interface {
	Resolve(token string) (*model.Identity, error)
}

// Redirect tells a page handler where to send the browser instead of
// rendering.
type Redirect struct {
	Location    string
	ClearCookie bool
	Flash       string
}

// Result holds exactly one of Identity or Redirect.
type Result struct {
	Identity *model.Identity
	Redirect *Redirect
}

// OK reports whether the session resolved to an identity.
func (r Result) OK() bool {
	return r.Identity != nil
}

func loginRedirect(flash string) Result {
	return Result{Redirect: &Redirect{Location: LoginPage, ClearCookie: true, Flash: flash}}
}

// Resolve maps a cookie token to an identity. A missing or rejected token,
// and a failing or panicking resolver, all yield the same login redirect.
func Resolve(resolver Resolver, token string) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warning("session resolve panic:", p)
			result = loginRedirect(sessionExpired)
		}
	}()
	if token == "" {
		return loginRedirect("")
	}
	identity, err := resolver.Resolve(token)
	if err != nil || identity == nil {
		logger.Debug("session token rejected:", err)
		return loginRedirect(sessionExpired)
	}
	return Result{Identity: identity}
}

// Follow writes the redirect to the response.
func (r *Redirect) Follow(c *gin.Context) {
	if r.ClearCookie {
		ClearAccessToken(c)
	}
	if r.Flash != "" {
		if err := AddFlash(c, r.Flash); err != nil {
			logger.Warning("Unable to save flash message:", err)
		}
	}
	c.Redirect(http.StatusFound, r.Location)
	c.Abort()
}

// AccessToken returns the token stored in the browser cookie, if any.
func AccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func SetAccessToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, token, maxAge, "/", "", false, true)
}

func ClearAccessToken(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
}

func AddFlash(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg)
	return s.Save()
}

// Flashes pops the pending flash messages.
func Flashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		logger.Warning("Unable to save session after reading flashes:", err)
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
