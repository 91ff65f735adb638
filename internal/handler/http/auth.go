package http

import (
	"encoding/json"
	"net/http"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/auth"
	"github.com/peoplemesh/hrms-backend-go/internal/handler/http/response"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/jwt"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/oauth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService   auth.AuthService
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service, googleService oauth.GoogleService) AuthHandler {
	return &AuthHandlerImpl{
		authService:   authService,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (h *AuthHandlerImpl) writeTokens(w http.ResponseWriter, tokens auth.TokenResponse, message string) {
	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresAt))
	response.SuccessWithMessage(w, message, tokens)
}

// Register implements AuthHandler.
func (h *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeTokens(w, tokens, "Registered successfully")
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeTokens(w, tokens, "Logged in successfully")
}

// refreshTokenFrom takes the token from the cookie first and falls
// back to the JSON body.
func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// Refresh implements AuthHandler.
func (h *AuthHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeTokens(w, tokens, "Token refreshed")
}

// Logout implements AuthHandler.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	// Expire the cookie.
	http.SetCookie(w, h.jwtService.RefreshTokenCookie("", 0))
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// LoginWithGoogle implements AuthHandler. Redirects the browser to the
// Google consent screen.
func (h *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if h.googleService == nil {
		response.NotFound(w, "Google sign-in is not configured")
		return
	}

	state := h.googleService.NewState(r.UserAgent())
	http.Redirect(w, r, h.googleService.AuthURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (h *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	if h.googleService == nil {
		response.NotFound(w, "Google sign-in is not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Authorization code is required", nil)
		return
	}

	token, err := h.googleService.Exchange(r.Context(), code)
	if err != nil {
		response.Unauthorized(w, "Failed to verify Google authorization code")
		return
	}

	info, err := h.googleService.FetchUser(r.Context(), token)
	if err != nil {
		response.Unauthorized(w, "Failed to fetch Google account information")
		return
	}

	tokens, err := h.authService.LoginWithGoogle(r.Context(), info.GoogleID, info.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeTokens(w, tokens, "Logged in with Google")
}
