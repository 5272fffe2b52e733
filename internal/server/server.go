package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"june-voice-backend/internal/assistant"
	"june-voice-backend/internal/config"
	"june-voice-backend/internal/db"
	"june-voice-backend/internal/googleapi"
	"june-voice-backend/internal/intent"
	"june-voice-backend/internal/llm"
	"june-voice-backend/internal/store"
	"june-voice-backend/internal/types"
)

// audioFieldNames are the multipart field names clients are known to use
// for the recorded clip, tried in order.
var audioFieldNames = []string{"file", "audio", "voice", "sound", "recording"}

type Server struct {
	router        *chi.Mux
	store         *store.MemoryStore
	client        *openai.Client
	cfg           config.Config
	oauthCfg      *oauth2.Config
	tokenStore    *store.FileTokenStore
	database      *db.DB
	databaseStore *store.DatabaseStore
	local         *store.LocalStore
	google        *googleapi.Services
	assistant     *assistant.Assistant
}

func NewServer(cfg config.Config) (*Server, error) {
	client := openai.NewClient(cfg.OpenAIAPIKey)
	ms := store.NewMemoryStore(40)
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true, // Enable credentials for cookies
		MaxAge:           300,
	}))

	// OAuth2 config (may be partially empty if env not set; handlers will check)
	oCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       cfg.GoogleScopes,
		Endpoint:     google.Endpoint,
	}
	ts := store.NewFileTokenStore(cfg.GoogleTokenFile)

	// Initialize database if DB_URL is provided
	var database *db.DB
	var databaseStore *store.DatabaseStore
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Println("[server] database connection established")

		if err := database.RunMigrations(cfg.MigrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		databaseStore = store.NewDatabaseStore(database)
	} else {
		log.Println("warning: DB_URL not provided, notes and lists fall back to Drive or process memory")
	}

	s := &Server{
		router:        r,
		store:         ms,
		client:        client,
		cfg:           cfg,
		oauthCfg:      oCfg,
		tokenStore:    ts,
		database:      database,
		databaseStore: databaseStore,
		local:         store.NewLocalStore(),
	}
	s.google = googleapi.New(oCfg, s)

	model, err := llm.Load(cfg.IntentPromptSpec, client, cfg.Model)
	if err != nil {
		// Keyword routing still works without the model spec.
		log.Printf("warning: intent prompt spec unavailable, using keyword rules only: %v", err)
	}

	notes, lists := s.noteListStores()
	s.assistant = assistant.New(assistant.Assistant{
		Voice:    cfg.AssistantVoice,
		Timeout:  cfg.UpstreamTimeout,
		Calendar: s.google,
		Contacts: s.google,
		Mail:     s.google,
		Notes:    notes,
		Lists:    lists,
	})
	if model != nil {
		s.assistant.Model = model
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/query", s.handleQuery)
	s.router.Post("/api/voice", s.handleVoice)
	s.router.Post("/api/tts", s.handleTTS)
	s.router.Get("/api/tts/voices", s.handleTTSVoices)
	// Google OAuth
	s.router.Get("/api/google/status", s.handleGoogleStatus)
	s.router.Get("/api/google/auth", s.handleGoogleAuth)
	s.router.Get("/api/google/callback", s.handleGoogleCallback)
	// Direct Google proxies for the frontend panels
	s.router.Get("/api/gmail/recent", s.handleGmailRecent)
	s.router.Get("/api/calendar/upcoming", s.handleCalendarUpcoming)
	s.router.Get("/api/contacts/search", s.handleContactSearch)
	s.router.Get("/api/youtube/search", s.handleYouTubeSearch)
}

func (s *Server) Router() http.Handler { return s.router }

// Close releases the database connection if one was opened.
func (s *Server) Close() error {
	if s.database != nil {
		return s.database.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.database != nil {
		if err := s.database.HealthCheck(); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		} else {
			status["database"] = "ok"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req types.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	env := s.respond(r.Context(), sid, req.Text)
	s.writeEnvelope(w, sid, env)
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	sid := getOrCreateSessionID(r, w)
	file, header, err := audioFormFile(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "audio file is required (field 'file')")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	tr, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.cfg.STTModel,
		Reader:   file,
		FilePath: header.Filename,
	})
	if err != nil {
		log.Println("transcription error:", err)
		s.writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	transcribed := strings.TrimSpace(tr.Text)
	if transcribed == "" {
		s.writeError(w, http.StatusBadGateway, "empty transcription")
		return
	}

	env := s.respond(ctx, sid, transcribed)
	env.Transcript = transcribed
	s.writeEnvelope(w, sid, env)
}

// respond runs one utterance through the assistant, applying the one piece
// of cross-turn state the transport owns: when the previous turn asked who
// to call and this turn is a bare name, re-frame it as a call request.
func (s *Server) respond(ctx context.Context, sid, text string) intent.Envelope {
	s.store.Append(sid, store.Message{Role: "user", Content: text})

	if kind, ok := s.store.GetPendingIntent(sid); ok && kind == string(intent.KindCall) {
		if intent.Classify(text) == intent.KindGeneral {
			text = "call " + strings.TrimSpace(text)
		}
		s.store.ClearPendingIntent(sid)
	}

	env := s.assistant.Respond(ctx, text)
	if env.Message == assistant.ClarifyCallMessage {
		s.store.SetPendingIntent(sid, string(intent.KindCall))
	}

	s.store.Append(sid, store.Message{Role: "assistant", Content: env.Message})
	return env
}

func audioFormFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	var lastErr error
	for _, field := range audioFieldNames {
		file, header, err := r.FormFile(field)
		if err == nil {
			return file, header, nil
		}
		lastErr = err
	}
	return nil, nil, lastErr
}

// noteListStores picks where voice notes and lists go: Drive documents
// when a Google account is linked, else Postgres, else process memory.
func (s *Server) noteListStores() (assistant.NoteStore, assistant.ListStore) {
	router := &storageRouter{server: s}
	return router, router
}

// storageRouter tries Google Drive first and falls back when the session
// has no linked account, so a deployment works with any subset of DB_URL
// and Google credentials configured.
type storageRouter struct {
	server *Server
}

func (sr *storageRouter) CreateNote(ctx context.Context, title, content string) (assistant.StoreResult, error) {
	res, err := sr.server.google.CreateNote(ctx, title, content)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, googleapi.ErrNotAuthenticated) {
		return assistant.StoreResult{}, err
	}
	if sr.server.databaseStore != nil {
		return sr.server.databaseStore.CreateNote(ctx, title, content)
	}
	return sr.server.local.CreateNote(ctx, title, content)
}

func (sr *storageRouter) SaveList(ctx context.Context, title string, items []string, appendToExisting bool) (assistant.StoreResult, error) {
	res, err := sr.server.google.SaveList(ctx, title, items, appendToExisting)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, googleapi.ErrNotAuthenticated) {
		return assistant.StoreResult{}, err
	}
	if sr.server.databaseStore != nil {
		return sr.server.databaseStore.SaveList(ctx, title, items, appendToExisting)
	}
	return sr.server.local.SaveList(ctx, title, items, appendToExisting)
}

// Token implements googleapi.TokenProvider with the same fallback order
// used for GitHub-style token lookup: database row first, then the file
// persisted by the OAuth callback.
func (s *Server) Token(ctx context.Context) (*oauth2.Token, error) {
	if s.databaseStore != nil {
		if auth, err := s.databaseStore.LatestGoogleAuth(); err == nil && auth != nil && strings.TrimSpace(auth.AccessToken) != "" {
			return &oauth2.Token{
				AccessToken:  auth.AccessToken,
				RefreshToken: auth.RefreshToken,
				TokenType:    "Bearer",
			}, nil
		}
	}
	if tok, err := s.tokenStore.Read(); err == nil && tok != nil && strings.TrimSpace(tok.AccessToken) != "" {
		return tok, nil
	}
	return nil, googleapi.ErrNotAuthenticated
}

func (s *Server) writeEnvelope(w http.ResponseWriter, sid string, env intent.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(env)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return fmt.Sprintf("s_%d", time.Now().UnixNano())
}

// getSessionID retrieves the session ID from cookie or query parameter/header
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets existing session ID or creates a new one, setting the cookie
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		log.Printf("[session] creating new session: %s for endpoint: %s", sid, r.URL.Path)
		SetSessionCookie(w, sid)
	}
	return sid
}

// ElevenLabs TTS proxy: JSON { text, voiceId? } -> audio/mpeg
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var body types.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "invalid text body")
		return
	}
	if s.cfg.ElevenAPIKey == "" {
		s.writeError(w, http.StatusBadRequest, "elevenlabs not configured")
		return
	}

	voiceID := s.cfg.ElevenVoiceID
	if strings.TrimSpace(body.VoiceID) != "" {
		voiceID = body.VoiceID
	}
	if strings.TrimSpace(voiceID) == "" {
		s.writeError(w, http.StatusBadRequest, "no elevenlabs voice configured or provided")
		return
	}
	url := fmt.Sprintf("https://api.elevenlabs.io/v1/text-to-speech/%s/stream", voiceID)
	payload := map[string]any{
		"text":     body.Text,
		"model_id": s.cfg.ElevenModel,
		"voice_settings": map[string]any{
			"stability":         0.5,
			"similarity_boost":  0.7,
			"style":             0.2,
			"use_speaker_boost": true,
		},
		"optimize_streaming_latency": 4,
		"output_format":              "mp3_44100_128",
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(r.Context(), "POST", url, bytes.NewReader(b))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "tts request build failed")
		return
	}
	req.Header.Set("xi-api-key", s.cfg.ElevenAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "tts request failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bb, _ := io.ReadAll(resp.Body)
		log.Println("elevenlabs error:", string(bb))
		s.writeError(w, http.StatusBadGateway, "tts error")
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}

// ElevenLabs Voices proxy: GET -> JSON { voices: [...] }
func (s *Server) handleTTSVoices(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ElevenAPIKey == "" {
		s.writeError(w, http.StatusBadRequest, "elevenlabs not configured")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), "GET", "https://api.elevenlabs.io/v1/voices", nil)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "voices request build failed")
		return
	}
	req.Header.Set("xi-api-key", s.cfg.ElevenAPIKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "voices request failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bb, _ := io.ReadAll(resp.Body)
		log.Println("elevenlabs voices error:", string(bb))
		s.writeError(w, http.StatusBadGateway, "voices error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}
