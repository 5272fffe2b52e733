package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"june-voice-backend/internal/types"
)

// GET /api/google/status
// Returns { authenticated: bool, account_email?: string }
func (s *Server) handleGoogleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sid := getSessionID(r)

	var resp types.GoogleStatusResponse

	if s.databaseStore != nil && sid != "" {
		auth, err := s.databaseStore.GetGoogleAuth(sid)
		if err == nil && auth != nil {
			resp.Authenticated = true
			resp.AccountEmail = auth.AccountEmail
		}
	}
	if !resp.Authenticated {
		tok, _ := s.tokenStore.Read()
		if tok != nil {
			resp.Authenticated = true
			if sid != "" {
				resp.AccountEmail = s.store.GetAccount(sid)
			}
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// GET /api/google/auth
// Initiates OAuth flow and returns { url } to redirect the browser
func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil || s.oauthCfg.ClientID == "" || s.oauthCfg.ClientSecret == "" {
		s.writeError(w, http.StatusBadRequest, "google oauth not configured")
		return
	}
	sid := getOrCreateSessionID(r, w)
	state := randomState()
	s.store.SetOAuthState(sid, state)
	// Offline access so Google returns a refresh token we can persist.
	url := s.oauthCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url, "sessionId": sid})
}

// GET /api/google/callback?code=...&state=...
// Exchanges code for token and persists it; responds with a small HTML page that closes the popup
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		s.writeError(w, http.StatusBadRequest, "google oauth not configured")
		return
	}
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		s.writeError(w, http.StatusBadRequest, "missing state or code")
		return
	}
	sid := s.store.GetSessionByOAuthState(state)
	if sid == "" || s.store.GetOAuthState(sid) != state {
		s.writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	ctx := r.Context()
	tok, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	email := fetchGoogleEmail(tok.AccessToken)

	// Store in database if available, otherwise fall back to file storage
	if s.databaseStore != nil {
		if err := s.databaseStore.SaveGoogleAuth(sid, tok.AccessToken, tok.RefreshToken, email); err != nil {
			s.writeError(w, http.StatusInternalServerError, "failed to save Google auth to database")
			return
		}
	} else {
		if err := s.tokenStore.Write(tok); err != nil {
			s.writeError(w, http.StatusInternalServerError, "token persist failed")
			return
		}
	}

	s.store.SetAccount(sid, email)
	s.store.ClearOAuthState(sid)

	// Set session cookie so popup and main window share the same session
	SetSessionCookie(w, sid)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html><html><body><p>Google account connected. You can close this window.</p><script>window.close()</script></body></html>`)
}

func randomState() string {
	var b [24]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Minimal call to resolve the authenticated account's email; stdlib only
func fetchGoogleEmail(accessToken string) string {
	req, _ := http.NewRequest("GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Email)
}
