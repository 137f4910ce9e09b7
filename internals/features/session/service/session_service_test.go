package service_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpoints_client/internals/configs"
	"studentpoints_client/internals/constants"
	database "studentpoints_client/internals/databases"
	authRepo "studentpoints_client/internals/features/auth/repository"
	"studentpoints_client/internals/features/session/service"
	"studentpoints_client/internals/gateway"
	helper "studentpoints_client/internals/helpers"
	"studentpoints_client/internals/testkit/fakeapi"
)

type fixture struct {
	fake    *fakeapi.Server
	storage database.Storage
	store   *service.Store
	baseURL string
}

func newFixture(t *testing.T, storage database.Storage) *fixture {
	t.Helper()

	fake := fakeapi.New()
	ts, base := fake.Start()
	t.Cleanup(ts.Close)

	_, err := fake.AddUser("user-1", "102210001", "secret1")
	require.NoError(t, err)

	if storage == nil {
		s, err := database.Open(configs.StorageConfig{Driver: "bolt", Path: filepath.Join(t.TempDir(), "device.db")}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		storage = s
	}

	gw := gateway.New(base, service.NewTokens(storage))
	store := service.NewStore(storage, authRepo.NewAuthRepository(gw), nil)
	return &fixture{fake: fake, storage: storage, store: store, baseURL: base}
}

func TestLoginThenCurrentSession(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	sess, err := f.store.Login(ctx, "  102210001 ", "secret1")
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "user-1", sess.UserID)
	require.NotNil(t, sess.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(fakeapi.DefaultTokenTTL), *sess.ExpiresAt, time.Minute)
	assert.False(t, sess.IsExpired(time.Now()))

	cur, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, cur.Token)
	assert.Equal(t, "user-1", cur.UserID)
	assert.Empty(t, cur.StudentID)
}

func TestLogoutClearsAllFields(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "102210001", "secret1")
	require.NoError(t, err)
	require.NoError(t, f.store.SetStudentID(ctx, "stu-1"))

	cur, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", cur.StudentID)

	f.store.Logout(ctx)

	cur, err = f.store.Current(ctx)
	require.NoError(t, err)
	assert.False(t, cur.LoggedIn())
	assert.Empty(t, cur.UserID)
	assert.Empty(t, cur.StudentID)

	for _, key := range constants.SessionKeys {
		_, found, err := f.storage.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}

func TestLoginBlankCredentialsSkipsNetwork(t *testing.T) {
	f := newFixture(t, nil)

	for _, creds := range [][2]string{{"", "x"}, {"   ", "x"}, {"u", ""}, {"u", "   "}} {
		_, err := f.store.Login(context.Background(), creds[0], creds[1])
		require.Error(t, err)
		assert.Equal(t, helper.KindValidationFailed, helper.KindOf(err))
	}
	assert.Zero(t, f.fake.TotalRequests())
}

func TestLoginWrongPasswordPersistsNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "102210001", "wrong")
	require.Error(t, err)
	assert.Equal(t, helper.KindInvalidCredentials, helper.KindOf(err))

	var ae *helper.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Sai tài khoản hoặc mật khẩu!", ae.Message)

	cur, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.False(t, cur.LoggedIn())
}

func TestLoginServerAndNetworkFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.fake.FailWith(http.StatusServiceUnavailable, "maintenance")
	_, err := f.store.Login(ctx, "102210001", "secret1")
	assert.Equal(t, helper.KindServerError, helper.KindOf(err))

	// server mati
	dead := gateway.New("http://127.0.0.1:1", nil)
	store := service.NewStore(f.storage, authRepo.NewAuthRepository(dead), nil)
	_, err = store.Login(ctx, "102210001", "secret1")
	assert.Equal(t, helper.KindNetworkUnavailable, helper.KindOf(err))

	cur, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.False(t, cur.LoggedIn())
}

func TestLoginStorageFailure(t *testing.T) {
	mem := newMemStorage()
	mem.failSetMany = errors.New("disk full")
	f := newFixture(t, mem)

	_, err := f.store.Login(context.Background(), "102210001", "secret1")
	require.Error(t, err)
	assert.Equal(t, helper.KindStorageFailed, helper.KindOf(err))
	assert.Empty(t, mem.values)
}

func TestLoginClearsStaleStudentID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.storage.Set(ctx, constants.StorageKeyStudentID, "someone-else"))

	_, err := f.store.Login(ctx, "102210001", "secret1")
	require.NoError(t, err)

	cur, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur.StudentID)
}

func TestLogoutIsBestEffort(t *testing.T) {
	mem := newMemStorage()
	f := newFixture(t, mem)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "102210001", "secret1")
	require.NoError(t, err)
	require.NoError(t, f.store.SetStudentID(ctx, "stu-1"))

	mem.failDelete = map[string]bool{constants.StorageKeyToken: true}
	f.store.Logout(ctx)

	_, tokenLeft := mem.values[constants.StorageKeyToken]
	_, userLeft := mem.values[constants.StorageKeyUserID]
	_, studentLeft := mem.values[constants.StorageKeyStudentID]
	assert.True(t, tokenLeft)
	assert.False(t, userLeft)
	assert.False(t, studentLeft)
}

func TestCurrentStorageReadFailure(t *testing.T) {
	mem := newMemStorage()
	mem.failGet = errors.New("io error")
	f := newFixture(t, mem)

	_, err := f.store.Current(context.Background())
	assert.Equal(t, helper.KindStorageFailed, helper.KindOf(err))
}

func TestTokenExpiry(t *testing.T) {
	fake := fakeapi.New()
	tok, err := fake.IssueToken("u", -time.Minute)
	require.NoError(t, err)

	exp := service.TokenExpiry(tok)
	require.NotNil(t, exp)
	assert.True(t, exp.Before(time.Now()))

	assert.Nil(t, service.TokenExpiry("opaque-token"))
}

func TestSetStudentIDIgnoresBlank(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.store.SetStudentID(ctx, "  "))
	_, found, err := f.storage.Get(ctx, constants.StorageKeyStudentID)
	require.NoError(t, err)
	assert.False(t, found)
}

/* ===============================
   memStorage
=================================*/

type memStorage struct {
	values      map[string]string
	failGet     error
	failSetMany error
	failDelete  map[string]bool
}

func newMemStorage() *memStorage {
	return &memStorage{values: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStorage) SetMany(_ context.Context, values map[string]string) error {
	if m.failSetMany != nil {
		return m.failSetMany
	}
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	if m.failDelete[key] {
		return errors.New("delete failed")
	}
	delete(m.values, key)
	return nil
}

func (m *memStorage) Close() error { return nil }
