package auth

import (
	"errors"
	"time"

	"github.com/wanderhub/wanderhub/internal/config"
	"github.com/wanderhub/wanderhub/internal/session"
)

// Service issues and refreshes session tokens for the active session.
type Service struct {
	cfg      config.Config
	sessions *session.Service
}

// NewService builds the token service.
func NewService(cfg config.Config, sessions *session.Service) *Service {
	return &Service{cfg: cfg, sessions: sessions}
}

// TokenPair bundles the access and refresh tokens issued at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Issue signs an access/refresh token pair for username.
func (s *Service) Issue(username string) (TokenPair, error) {
	access, accessExp, err := s.sign(username, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.sign(username, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(accessExp).Seconds()),
	}, nil
}

func (s *Service) sign(username, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := map[string]any{
		"sub": username,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Refresh verifies the refresh token and returns a new access token if
// its subject still owns the active session.
func (s *Service) Refresh(refreshToken string) (string, int64, error) {
	claims, err := ParseAndVerifyHS256(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, errors.New("invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
		return "", 0, errors.New("refresh token expired")
	}

	user, ok := s.sessions.Current()
	if !ok || user.Username != sub {
		return "", 0, errors.New("session no longer active")
	}

	signed, _, err := s.sign(sub, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Verify checks an access token and returns its subject.
func (s *Service) Verify(accessToken string) (string, error) {
	claims, err := ParseAndVerifyHS256(accessToken, []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("missing subject")
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
		return "", errors.New("token expired")
	}
	return sub, nil
}
