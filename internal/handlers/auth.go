package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/middleware"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/pkg/response"
)

const (
	refreshTokenCookie = "sb-refresh-token"
	codeVerifierCookie = "sb-code-verifier"

	refreshCookieMaxAge = 30 * 24 * 60 * 60

	defaultNext  = "/admin"
	authErrorURL = "/login?error=auth_code_error"
)

type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
	trustedHosts  map[string]bool
}

// NewAuthHandler builds the auth endpoints. Forwarded hosts are only
// honoured for redirects when they match one of siteOrigins.
func NewAuthHandler(authService *services.AuthService, secureCookies bool, siteOrigins []string) *AuthHandler {
	hosts := make(map[string]bool)
	for _, origin := range siteOrigins {
		u, err := url.Parse(strings.TrimSpace(origin))
		if err != nil || u.Host == "" {
			continue
		}
		hosts[strings.ToLower(u.Host)] = true
	}
	return &AuthHandler{authService: authService, secureCookies: secureCookies, trustedHosts: hosts}
}

// Login signs an admin in with email and password
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setSessionCookies(c, sess)
	response.Success(c, sess)
}

// Refresh exchanges a refresh token from the body or cookie for a new
// session
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(refreshTokenCookie)
	}

	sess, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setSessionCookies(c, sess)
	response.Success(c, sess)
}

// Logout revokes the session and clears the cookies
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.AccessTokenCookie)
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	}

	h.authService.Logout(c.Request.Context(), token)
	h.clearSessionCookies(c)
	response.Success(c, gin.H{"message": "logged out successfully"})
}

// GetCurrentUser returns the signed-in admin
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	response.Success(c, gin.H{
		"id":    middleware.GetUserID(c),
		"email": middleware.GetEmail(c),
		"role":  middleware.GetRole(c),
	})
}

// Callback completes an email link sign in (invite, magic link) and
// redirects into the admin area
// GET /auth/callback?code=&next=
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	next := services.SafeRedirect(c.Query("next"), defaultNext)
	verifier, _ := c.Cookie(codeVerifierCookie)

	if code == "" {
		c.Redirect(http.StatusFound, authErrorURL)
		return
	}

	sess, err := h.authService.ExchangeCode(c.Request.Context(), code, verifier)
	if err != nil {
		c.Redirect(http.StatusFound, authErrorURL)
		return
	}

	h.setSessionCookies(c, sess)
	h.setCookie(c, codeVerifierCookie, "", -1)
	c.Redirect(http.StatusFound, h.redirectTarget(c, next))
}

// redirectTarget honours the forwarded host set by a load balancer when it
// is one of the site origins.
func (h *AuthHandler) redirectTarget(c *gin.Context, next string) string {
	host := strings.ToLower(c.GetHeader("X-Forwarded-Host"))
	if host == "" || gin.Mode() == gin.DebugMode || !h.trustedHosts[host] {
		return next
	}
	u := url.URL{Scheme: "https", Host: host}
	return u.String() + next
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, sess *services.Session) {
	h.setCookie(c, middleware.AccessTokenCookie, sess.AccessToken, sess.ExpiresIn)
	h.setCookie(c, refreshTokenCookie, sess.RefreshToken, refreshCookieMaxAge)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setCookie(c, refreshTokenCookie, "", -1)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}
