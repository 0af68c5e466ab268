package sys

import (
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

var ErrInvalidDuration = errors.New("duration must be positive")

// TrollSession is the durable record of one ghost-ping session.
type TrollSession struct {
	UserID  snowflake.ID `json:"userId"`
	EndTime int64        `json:"endTime"` // unix milliseconds
}

func (s TrollSession) End() time.Time {
	return time.UnixMilli(s.EndTime)
}

// ActiveAt reports whether the session has not reached its end time at now.
func (s TrollSession) ActiveAt(now time.Time) bool {
	return s.EndTime > now.UnixMilli()
}

// MinutesLeft rounds the remaining time up to whole minutes.
func (s TrollSession) MinutesLeft(now time.Time) int {
	remaining := s.EndTime - now.UnixMilli()
	if remaining <= 0 {
		return 0
	}
	return int((remaining + 59_999) / 60_000)
}

// TrollStore persists sessions as a JSON array of {userId, endTime}.
type TrollStore struct {
	file *JSONFile[TrollSession]
	now  func() time.Time
}

func NewTrollStore(path string) *TrollStore {
	return &TrollStore{file: NewJSONFile[TrollSession](path), now: time.Now}
}

// Save appends a session ending duration from now.
func (s *TrollStore) Save(userID snowflake.ID, duration time.Duration) (TrollSession, error) {
	if duration <= 0 {
		return TrollSession{}, ErrInvalidDuration
	}
	session := TrollSession{UserID: userID, EndTime: s.now().Add(duration).UnixMilli()}
	return session, s.Put(session)
}

// Put appends an already computed session.
func (s *TrollStore) Put(session TrollSession) error {
	return s.file.Update(func(items []TrollSession) []TrollSession {
		return append(items, session)
	})
}

// Replace drops every record for the session's user and stores the new one in a single write.
func (s *TrollStore) Replace(session TrollSession) error {
	return s.file.Update(func(items []TrollSession) []TrollSession {
		return append(withoutUser(items, session.UserID), session)
	})
}

// Remove deletes every record for userID. Removing an unknown user is a no-op.
func (s *TrollStore) Remove(userID snowflake.ID) error {
	return s.file.Update(func(items []TrollSession) []TrollSession {
		return withoutUser(items, userID)
	})
}

// List returns every stored record, including expired ones.
func (s *TrollStore) List() []TrollSession {
	return s.file.Load()
}

// Active returns the records whose end time is after now.
func (s *TrollStore) Active(now time.Time) []TrollSession {
	var active []TrollSession
	for _, session := range s.List() {
		if session.ActiveAt(now) {
			active = append(active, session)
		}
	}
	return active
}

// Prune drops expired records and returns how many were removed.
func (s *TrollStore) Prune(now time.Time) (int, error) {
	removed := 0
	err := s.file.Update(func(items []TrollSession) []TrollSession {
		kept := items[:0]
		for _, session := range items {
			if session.ActiveAt(now) {
				kept = append(kept, session)
			} else {
				removed++
			}
		}
		return kept
	})
	return removed, err
}

func (s *TrollStore) Clear() error {
	return s.file.Update(func([]TrollSession) []TrollSession {
		return nil
	})
}

func withoutUser(items []TrollSession, userID snowflake.ID) []TrollSession {
	kept := items[:0]
	for _, session := range items {
		if session.UserID != userID {
			kept = append(kept, session)
		}
	}
	return kept
}
