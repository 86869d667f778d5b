// Package repotest provides in-memory repositories for service tests that
// need state to persist across calls.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/guardian-of-arcadia/aetherius/aetherius/database/models"
	"github.com/guardian-of-arcadia/aetherius/aetherius/database/repositories"
	"github.com/uptrace/bun"
)

// UserStore keeps copies of rows so callers cannot mutate stored state
// without calling Update.
type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

var _ repositories.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

func (s *UserStore) Get(userID string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	return u, ok
}

func (s *UserStore) GetByUserID(_ context.Context, userID string) (*models.User, error) {
	u, ok := s.Get(userID)
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "user", ID: userID}
	}
	return &u, nil
}

func (s *UserStore) GetForUpdate(_ context.Context, userID string) (*models.User, error) {
	u, ok := s.Get(userID)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) LockForUpdate(_ context.Context, userIDs ...string) ([]*models.User, error) {
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)
	var out []*models.User
	for _, id := range ids {
		if u, ok := s.Get(id); ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (s *UserStore) Insert(_ context.Context, user *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return false, nil
	}
	s.users[user.UserID] = *user
	return true, nil
}

func (s *UserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return &repositories.NotFoundError{Entity: "user", ID: user.UserID}
	}
	s.users[user.UserID] = *user
	return nil
}

func (s *UserStore) sorted() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Points != all[j].Points {
			return all[i].Points > all[j].Points
		}
		return all[i].UserID < all[j].UserID
	})
	return all
}

func (s *UserStore) GetTopUsers(_ context.Context, limit, offset int) ([]*models.User, error) {
	all := s.sorted()
	var out []*models.User
	for i := offset; i < len(all) && len(out) < limit; i++ {
		u := all[i]
		out = append(out, &u)
	}
	return out, nil
}

func (s *UserStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

func (s *UserStore) GetPosition(_ context.Context, userID string) (int, error) {
	for i, u := range s.sorted() {
		if u.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, &repositories.NotFoundError{Entity: "user", ID: userID}
}

func (s *UserStore) WithTx(bun.IDB) repositories.UserRepository {
	return s
}

type questKey struct {
	user, day string
}

type QuestStore struct {
	mu      sync.Mutex
	nextID  int64
	quests  map[questKey]models.DailyQuest
	details map[questKey]models.QuestSignalDetail
}

var _ repositories.QuestRepository = (*QuestStore)(nil)

func NewQuestStore() *QuestStore {
	return &QuestStore{
		quests:  make(map[questKey]models.DailyQuest),
		details: make(map[questKey]models.QuestSignalDetail),
	}
}

func (s *QuestStore) Get(_ context.Context, userID, day string) (*models.DailyQuest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quests[questKey{userID, day}]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "daily quest", ID: userID}
	}
	return &q, nil
}

func (s *QuestStore) GetForUpdate(ctx context.Context, userID, day string) (*models.DailyQuest, error) {
	q, err := s.Get(ctx, userID, day)
	if repositories.IsNotFound(err) {
		return nil, nil
	}
	return q, err
}

func (s *QuestStore) InsertIfAbsent(_ context.Context, quest *models.DailyQuest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := questKey{quest.UserID, quest.AssignedDate}
	if _, ok := s.quests[key]; ok {
		return false, nil
	}
	s.nextID++
	quest.ID = s.nextID
	s.quests[key] = *quest
	return true, nil
}

func (s *QuestStore) Update(_ context.Context, quest *models.DailyQuest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quests[questKey{quest.UserID, quest.AssignedDate}] = *quest
	return nil
}

func (s *QuestStore) GetDetailForUpdate(_ context.Context, userID, day string) (*models.QuestSignalDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.details[questKey{userID, day}]
	if !ok {
		return nil, nil
	}
	d.ChannelsSeen = append([]string(nil), d.ChannelsSeen...)
	d.CommandsSeen = append([]string(nil), d.CommandsSeen...)
	return &d, nil
}

func (s *QuestStore) InsertDetailIfAbsent(_ context.Context, detail *models.QuestSignalDetail) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := questKey{detail.UserID, detail.QuestDate}
	if _, ok := s.details[key]; ok {
		return false, nil
	}
	s.nextID++
	detail.ID = s.nextID
	s.details[key] = *detail
	return true, nil
}

func (s *QuestStore) UpdateDetail(_ context.Context, detail *models.QuestSignalDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[questKey{detail.UserID, detail.QuestDate}] = *detail
	return nil
}

func (s *QuestStore) DeleteDetailsBefore(_ context.Context, day string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k := range s.details {
		if k.day < day {
			delete(s.details, k)
			n++
		}
	}
	return n, nil
}

func (s *QuestStore) WithTx(bun.IDB) repositories.QuestRepository {
	return s
}

// Transactor serializes fn calls in place of row locks. Writes are not rolled
// back when fn fails.
type Transactor struct {
	mu sync.Mutex
}

func (t *Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx, bun.Tx{})
}
