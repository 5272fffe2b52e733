package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"june-voice-backend/internal/googleapi"
)

// Thin JSON proxies over the Google services, used by the frontend's
// side panels. Voice queries go through /api/query instead.

func (s *Server) handleGmailRecent(w http.ResponseWriter, r *http.Request) {
	count := 10
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			count = n
		}
	}
	messages, err := s.google.RecentMessages(r.Context(), count)
	if err != nil {
		s.writeGoogleError(w, "gmail", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": messages})
}

func (s *Server) handleCalendarUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 60 {
			days = n
		}
	}
	events, err := s.google.UpcomingEvents(r.Context(), days)
	if err != nil {
		s.writeGoogleError(w, "calendar", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"events": events})
}

func (s *Server) handleContactSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	contacts, err := s.google.FindContact(r.Context(), query)
	if err != nil {
		s.writeGoogleError(w, "contacts", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"contacts": contacts})
}

func (s *Server) handleYouTubeSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	videos, err := s.google.SearchVideos(r.Context(), query, 5)
	if err != nil {
		s.writeGoogleError(w, "youtube", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"videos": videos})
}

func (s *Server) writeGoogleError(w http.ResponseWriter, api string, err error) {
	if errors.Is(err, googleapi.ErrNotAuthenticated) {
		s.writeError(w, http.StatusUnauthorized, "google account not connected")
		return
	}
	log.Printf("[%s] google api error: %v", api, err)
	s.writeError(w, http.StatusBadGateway, api+" request failed")
}
