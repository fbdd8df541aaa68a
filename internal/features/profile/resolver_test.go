package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore — хранилище профилей в памяти для тестов резолвера.
type fakeStore struct {
	profiles map[int64]UserProfile
	upserts  int
	findErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[int64]UserProfile)}
}

func (f *fakeStore) FindByUserID(_ context.Context, userID int64) (*UserProfile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) Upsert(_ context.Context, p UserProfile) error {
	f.upserts++
	f.profiles[p.UserID] = p
	return nil
}

func ptr(v int64) *int64 { return &v }

func TestResolveParsedNicknameWins(t *testing.T) {
	store := newFakeStore()
	store.profiles[42] = UserProfile{UserID: 42, Nickname: "old"}
	r := NewResolver(store)

	nick, err := r.Resolve(context.Background(), ptr(42), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", nick)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, "alice", store.profiles[42].Nickname)
}

func TestResolveCreatesProfile(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)

	nick, err := r.Resolve(context.Background(), ptr(42), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", nick)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, "alice", store.profiles[42].Nickname)
}

func TestResolveNoRedundantWrite(t *testing.T) {
	// ник совпадает с профилем — запись в БД не нужна
	store := newFakeStore()
	store.profiles[42] = UserProfile{UserID: 42, Nickname: "alice"}
	r := NewResolver(store)

	nick, err := r.Resolve(context.Background(), ptr(42), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", nick)
	assert.Zero(t, store.upserts)
}

func TestResolveWithoutUserID(t *testing.T) {
	// пост канала: userID нет, профиль не трогаем
	store := newFakeStore()
	r := NewResolver(store)

	nick, err := r.Resolve(context.Background(), nil, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", nick)
	assert.Zero(t, store.upserts)
}

func TestResolveFallsBackToProfile(t *testing.T) {
	store := newFakeStore()
	store.profiles[42] = UserProfile{UserID: 42, Nickname: "alice"}
	r := NewResolver(store)

	nick, err := r.Resolve(context.Background(), ptr(42), "")
	require.NoError(t, err)
	assert.Equal(t, "alice", nick)
}

func TestResolveNothingKnown(t *testing.T) {
	r := NewResolver(newFakeStore())

	t.Run("нет ни ника, ни профиля", func(t *testing.T) {
		nick, err := r.Resolve(context.Background(), ptr(42), "")
		require.NoError(t, err)
		assert.Empty(t, nick)
	})

	t.Run("нет ни ника, ни userID", func(t *testing.T) {
		nick, err := r.Resolve(context.Background(), nil, "")
		require.NoError(t, err)
		assert.Empty(t, nick)
	})
}

func TestResolveStoreError(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("база недоступна")
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), ptr(42), "alice")
	assert.Error(t, err)
}
