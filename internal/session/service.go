package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wanderhub/wanderhub/internal/config"
	"github.com/wanderhub/wanderhub/internal/notification"
	"github.com/wanderhub/wanderhub/internal/rewards"
)

// welcomeBonus is granted once per username, on its first ever login.
const welcomeBonus = 100

type credential struct {
	username     string
	passwordHash []byte
	permanentVIP bool
}

// Service is the single authority over the active session and its
// rewards state. There is exactly one logical session at a time; the
// mutex only guards against concurrent HTTP handlers, not multiple
// sessions.
type Service struct {
	mu       sync.Mutex
	records  *Records
	creds    []credential
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
	current  *User
}

// NewService hashes the injected credential table and builds the
// session service.
func NewService(records *Records, creds []config.Credential, notifier notification.Notifier, logger *slog.Logger) (*Service, error) {
	hashed := make([]credential, 0, len(creds))
	for _, c := range creds {
		if c.Username == "" {
			return nil, fmt.Errorf("credential with empty username")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash credential for %s: %w", c.Username, err)
		}
		hashed = append(hashed, credential{username: c.Username, passwordHash: hash, permanentVIP: c.PermanentVIP})
	}
	return &Service{
		records:  records,
		creds:    hashed,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Restore rehydrates the active session from the persisted snapshot,
// reporting whether one was found.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.records.LoadSession(ctx)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	s.current = user
	s.logger.Info("session restored", "username", user.Username)
	return true, nil
}

// Login matches username/password against the credential table. A
// failed match returns false with no side effects; errors are reserved
// for store failures.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	for _, c := range s.creds {
		if c.username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) != nil {
			return false, nil
		}
		if err := s.completeLogin(ctx, username, c.permanentVIP); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// SocialLogin signs in with a deterministic username derived from the
// provider name. It always succeeds for a non-empty provider and never
// grants permanent VIP.
func (s *Service) SocialLogin(ctx context.Context, provider string) (bool, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return false, nil
	}
	username := strings.ToLower(provider) + "_user"
	if err := s.completeLogin(ctx, username, false); err != nil {
		return false, err
	}
	return true, nil
}

// LoginWithCode signs in with an identifier and one-time code. Both
// must be non-empty; the code itself is not verified against anything.
func (s *Service) LoginWithCode(ctx context.Context, identifier, code string) (bool, error) {
	if strings.TrimSpace(identifier) == "" || strings.TrimSpace(code) == "" {
		return false, nil
	}
	if err := s.completeLogin(ctx, identifier, false); err != nil {
		return false, err
	}
	return true, nil
}

// completeLogin is the shared tail of every login variant: grant the
// one-time welcome bonus to first-time usernames, merge the archived
// record, and install the new active session.
func (s *Service) completeLogin(ctx context.Context, username string, permanentVIP bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bonus := 0
	seen, err := s.records.SeenUsernames(ctx)
	if err != nil {
		return err
	}
	if !seen[username] {
		bonus = welcomeBonus
		seen[username] = true
		if err := s.records.SaveSeenUsernames(ctx, seen); err != nil {
			return err
		}
	}

	archived, err := s.records.LoadArchive(ctx, username)
	if err != nil {
		return err
	}

	user := &User{
		Username:            username,
		Points:              archived.Points + bonus,
		VIP:                 permanentVIP || archived.VIP,
		PermanentVIP:        permanentVIP,
		LastCheckIn:         archived.LastCheckIn,
		ConsecutiveCheckIns: archived.ConsecutiveCheckIns,
	}
	s.current = user

	if err := s.records.SaveSession(ctx, *user); err != nil {
		return err
	}

	s.logger.Info("session started", "username", username, "first_login", bonus > 0, "points", user.Points)
	return nil
}

// Logout archives the active session's rewards state under its
// username and clears the session. Logging out with no session is a
// no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	rec := ArchiveRecord{
		Points:              s.current.Points,
		VIP:                 s.current.VIP,
		LastCheckIn:         s.current.LastCheckIn,
		ConsecutiveCheckIns: s.current.ConsecutiveCheckIns,
	}
	if err := s.records.SaveArchive(ctx, s.current.Username, rec); err != nil {
		return err
	}
	if err := s.records.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("session ended", "username", s.current.Username, "points", s.current.Points)
	s.current = nil
	return nil
}

// Current returns a snapshot of the active session.
func (s *Service) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// AddPoints credits the active session. Without a session, or with a
// non-positive amount, it is a silent no-op.
func (s *Service) AddPoints(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || amount <= 0 {
		return
	}
	s.current.Points += amount
}

// SpendPoints debits the active session only when the balance covers
// the amount, reporting whether the deduction happened. The balance
// never goes negative.
func (s *Service) SpendPoints(amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || amount < 0 {
		return false
	}
	if s.current.Points < amount {
		return false
	}
	s.current.Points -= amount
	return true
}

// ToggleVIP flips the VIP flag. Permanent VIP grants cannot be toggled
// off; without a session this is a silent no-op.
func (s *Service) ToggleVIP() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.PermanentVIP {
		return
	}
	s.current.VIP = !s.current.VIP
}

// CanCheckIn reports whether the active session may still check in
// today.
func (s *Service) CanCheckIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canCheckInLocked()
}

func (s *Service) canCheckInLocked() bool {
	if s.current == nil {
		return false
	}
	if s.current.LastCheckIn == nil {
		return true
	}
	return !rewards.SameCalendarDay(*s.current.LastCheckIn, s.now())
}

// CheckIn performs the daily check-in, returning the points earned and
// whether the check-in happened. A second check-in on the same
// calendar day (or no active session) returns ok=false with no state
// change.
func (s *Service) CheckIn(ctx context.Context) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canCheckInLocked() {
		return 0, false
	}

	today := s.now()
	days, points := rewards.ComputeCheckIn(s.current.LastCheckIn, s.current.ConsecutiveCheckIns, today)
	s.current.LastCheckIn = &today
	s.current.ConsecutiveCheckIns = days
	s.current.Points += points

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDailyCheckIn,
			Destination: s.current.Username,
			Body:        fmt.Sprintf("Day %d check-in complete, you earned %d points", days, points),
		})
	}

	return points, true
}
