package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/identity-service/domain/errors"
	"ratehub/contexts/identity-access/identity-service/ports"
)

// Store is the in-memory identity repository used for development and tests.
// It also implements the Clock, IDGenerator, and Notifier ports; delivered
// notifications are recorded so tests can read issued codes back.
type Store struct {
	mu sync.RWMutex

	usersByUsername map[string]entities.User
	usernameByID    map[string]string
	usernameByEmail map[string]string
	notifications   []ports.CodeNotification
	sequence        uint64
}

func NewStore() *Store {
	return &Store{
		usersByUsername: make(map[string]entities.User),
		usernameByID:    make(map[string]string),
		usernameByEmail: make(map[string]string),
	}
}

func (s *Store) GetOrCreate(_ context.Context, username, email string, defaults entities.User) (entities.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.usersByUsername[username]; ok {
		if existing.Email == email {
			return existing, false, nil
		}
		return entities.User{}, false, domainerrors.ErrUsernameTaken
	}
	if _, ok := s.usernameByEmail[email]; ok {
		return entities.User{}, false, domainerrors.ErrEmailTaken
	}

	s.indexLocked(defaults)
	return defaults, true, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetByID(_ context.Context, id string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username, ok := s.usernameByID[id]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.usersByUsername[username], nil
}

func (s *Store) List(_ context.Context, filter ports.ListFilter) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.usersByUsername))
	for _, user := range s.usersByUsername {
		if filter.Search != "" && !strings.Contains(user.Username, filter.Search) {
			continue
		}
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Username < items[j].Username })
	return items, nil
}

func (s *Store) Create(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByUsername[user.Username]; ok {
		return domainerrors.ErrUsernameTaken
	}
	if _, ok := s.usernameByEmail[user.Email]; ok {
		return domainerrors.ErrEmailTaken
	}
	s.indexLocked(user)
	return nil
}

func (s *Store) Update(_ context.Context, username string, update ports.UserUpdate, now time.Time) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}

	if update.Email != nil && *update.Email != user.Email {
		if owner, taken := s.usernameByEmail[*update.Email]; taken && owner != username {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
		delete(s.usernameByEmail, user.Email)
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.LastLoginAt != nil {
		user.LastLoginAt = update.LastLoginAt.UTC()
	}
	user.UpdatedAt = now.UTC()

	s.indexLocked(user)
	return user, nil
}

func (s *Store) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.usersByUsername, username)
	delete(s.usernameByID, user.ID)
	delete(s.usernameByEmail, user.Email)
	return nil
}

func (s *Store) NotifyCodeIssued(_ context.Context, notification ports.CodeNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	return nil
}

// LastNotification returns the most recently recorded code delivery.
func (s *Store) LastNotification() (ports.CodeNotification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.notifications) == 0 {
		return ports.CodeNotification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("user_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) indexLocked(user entities.User) {
	s.usersByUsername[user.Username] = user
	s.usernameByID[user.ID] = user.Username
	s.usernameByEmail[user.Email] = user.Username
}
