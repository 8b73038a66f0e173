package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/wanderhub/wanderhub/internal/store"
)

const (
	sessionKey    = "session:current"
	seenKey       = "users:seen"
	archivePrefix = "users:archive:"
)

// ArchiveRecord is the per-username state kept across logout/login
// cycles.
type ArchiveRecord struct {
	Points              int        `json:"points"`
	VIP                 bool       `json:"vip"`
	LastCheckIn         *time.Time `json:"last_check_in"`
	ConsecutiveCheckIns int        `json:"consecutive_check_in_days"`
}

type sessionRecord struct {
	Username            string     `json:"username"`
	Points              int        `json:"points"`
	VIP                 bool       `json:"vip"`
	PermanentVIP        bool       `json:"permanent_vip"`
	LastCheckIn         *time.Time `json:"last_check_in"`
	ConsecutiveCheckIns int        `json:"consecutive_check_in_days"`
}

// Records is a typed facade over the key-value store holding the three
// logical records of the session domain: the current session snapshot,
// the seen-usernames registry and the per-username archive. A value
// that fails to decode is logged and treated as absent; corruption is
// never fatal.
type Records struct {
	store  store.Store
	logger *slog.Logger
}

// NewRecords builds the records facade.
func NewRecords(st store.Store, logger *slog.Logger) *Records {
	return &Records{store: st, logger: logger}
}

// LoadSession returns the persisted current session, if any.
func (r *Records) LoadSession(ctx context.Context) (*User, error) {
	raw, err := r.store.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.logger.Warn("corrupt session record, discarding", "error", err)
		return nil, nil
	}
	if rec.Username == "" {
		return nil, nil
	}
	return &User{
		Username:            rec.Username,
		Points:              rec.Points,
		VIP:                 rec.VIP,
		PermanentVIP:        rec.PermanentVIP,
		LastCheckIn:         rec.LastCheckIn,
		ConsecutiveCheckIns: rec.ConsecutiveCheckIns,
	}, nil
}

// SaveSession persists the current session snapshot.
func (r *Records) SaveSession(ctx context.Context, user User) error {
	payload, err := json.Marshal(sessionRecord{
		Username:            user.Username,
		Points:              user.Points,
		VIP:                 user.VIP,
		PermanentVIP:        user.PermanentVIP,
		LastCheckIn:         user.LastCheckIn,
		ConsecutiveCheckIns: user.ConsecutiveCheckIns,
	})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, sessionKey, string(payload))
}

// ClearSession removes the persisted session snapshot.
func (r *Records) ClearSession(ctx context.Context) error {
	return r.store.Delete(ctx, sessionKey)
}

// SeenUsernames returns the set of usernames that have completed a
// login at least once.
func (r *Records) SeenUsernames(ctx context.Context) (map[string]bool, error) {
	seen := make(map[string]bool)
	raw, err := r.store.Get(ctx, seenKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return seen, nil
		}
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		r.logger.Warn("corrupt seen-usernames record, discarding", "error", err)
		return seen, nil
	}
	for _, name := range names {
		seen[name] = true
	}
	return seen, nil
}

// SaveSeenUsernames persists the seen-usernames registry.
func (r *Records) SaveSeenUsernames(ctx context.Context, seen map[string]bool) error {
	names := make([]string, 0, len(seen))
	for name, ok := range seen {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, seenKey, string(payload))
}

// LoadArchive returns the archived record for username, zero-valued
// when absent or unreadable.
func (r *Records) LoadArchive(ctx context.Context, username string) (ArchiveRecord, error) {
	raw, err := r.store.Get(ctx, archivePrefix+username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ArchiveRecord{}, nil
		}
		return ArchiveRecord{}, err
	}
	var rec ArchiveRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.logger.Warn("corrupt archive record, discarding", "username", username, "error", err)
		return ArchiveRecord{}, nil
	}
	return rec, nil
}

// SaveArchive persists the archived record for username.
func (r *Records) SaveArchive(ctx context.Context, username string, rec ArchiveRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, archivePrefix+username, string(payload))
}
