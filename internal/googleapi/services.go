package googleapi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
	youtube "google.golang.org/api/youtube/v3"
)

// ErrNotAuthenticated is returned when no Google token is available yet.
var ErrNotAuthenticated = errors.New("google: not authenticated")

// Scopes covers every Google surface the assistant touches.
var Scopes = []string{
	calendar.CalendarScope,
	gmail.GmailReadonlyScope,
	people.ContactsReadonlyScope,
	drive.DriveFileScope,
	docs.DocumentsScope,
	youtube.YoutubeReadonlyScope,
	"openid",
	"email",
	"profile",
}

// TokenProvider supplies the current Google OAuth token. Implementations
// read whichever store the token landed in after the auth flow, so a
// token obtained at runtime is picked up without restarting.
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Services lazily constructs Google API clients from one OAuth config and
// token provider. It is an explicit context object passed to whoever
// needs it; there is no package-level client cache.
type Services struct {
	conf     *oauth2.Config
	provider TokenProvider

	mu       sync.Mutex
	calendar *calendar.Service
	gmail    *gmail.Service
	people   *people.Service
	drive    *drive.Service
	docs     *docs.Service
	youtube  *youtube.Service
}

// New builds the service context. Clients are created on first use, so
// constructing Services before the user has authenticated is fine.
func New(conf *oauth2.Config, provider TokenProvider) *Services {
	return &Services{conf: conf, provider: provider}
}

func (s *Services) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := s.provider.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrNotAuthenticated
	}
	// TokenSource refreshes through the config when the token expires.
	return s.conf.TokenSource(ctx, tok), nil
}

func (s *Services) calendarService(ctx context.Context) (*calendar.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calendar != nil {
		return s.calendar, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	s.calendar = svc
	return svc, nil
}

func (s *Services) gmailService(ctx context.Context) (*gmail.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gmail != nil {
		return s.gmail, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	s.gmail = svc
	return svc, nil
}

func (s *Services) peopleService(ctx context.Context) (*people.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.people != nil {
		return s.people, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := people.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}
	s.people = svc
	return svc, nil
}

func (s *Services) driveService(ctx context.Context) (*drive.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drive != nil {
		return s.drive, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	s.drive = svc
	return svc, nil
}

func (s *Services) docsService(ctx context.Context) (*docs.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs != nil {
		return s.docs, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	s.docs = svc
	return svc, nil
}

func (s *Services) youtubeService(ctx context.Context) (*youtube.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.youtube != nil {
		return s.youtube, nil
	}
	ts, err := s.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	s.youtube = svc
	return svc, nil
}
