package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	testUsername     = "testuser"
	testPassword     = "testpass"
	testPasswordHash = "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i" // testpass
	testAdmin        = &Admin{
		Username:     testUsername,
		PasswordHash: testPasswordHash,
	}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestService_Login(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testAdmin, time.Hour, rdb)
	require.NotNil(t, authService)
	assert.NotNil(t, authService.redisClient)
	assert.Equal(t, time.Hour, authService.ttl)

	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}

	now := time.Now()
	sessionKey := sessionKeyPrefix + testToken
	mock.ExpectSet(sessionKey, now.Unix(), 0).SetVal(fmt.Sprintf("%d", now.Unix()))
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)
	token, err := authService.Login(context.Background(), testUsername, testPassword, now)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)

	// wrong password
	token, err = authService.Login(context.Background(), testUsername, "invalid_pass", now)
	assert.ErrorIs(t, err, ErrWrongCredentials)
	assert.Empty(t, token)

	// wrong username
	token, err = authService.Login(context.Background(), "who-dis", testPassword, now)
	assert.ErrorIs(t, err, ErrWrongCredentials)
	assert.Empty(t, token)
}

func TestService_Logout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testAdmin, time.Hour, rdb)
	require.NotNil(t, authService)

	testToken := "test_token"
	sessionKey := sessionKeyPrefix + testToken
	createdAt := time.Now().Add(-time.Minute)

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%d", createdAt.Unix()))
	mock.ExpectSet(sessionKey, 0, 0).SetVal("0")
	mock.ExpectSRem(tokensSetKey, testToken).SetVal(1)

	loggedOut, err := authService.Logout(context.Background(), testToken)
	require.NoError(t, err)
	assert.True(t, loggedOut)
}

func TestService_ScanAndClean(t *testing.T) {
	ttl := time.Hour
	now := time.Now()
	then := now.Add(-2 * time.Hour)

	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewService(testAdmin, ttl, rdb)
	require.NotNil(t, authService)

	freshToken := "fresh_token"
	staleToken := "stale_token"
	mock.ExpectSMembers(tokensSetKey).SetVal([]string{freshToken, staleToken})
	mock.ExpectGet(sessionKeyPrefix + freshToken).SetVal(fmt.Sprintf("%d", now.Unix()))
	mock.ExpectGet(sessionKeyPrefix + staleToken).SetVal(fmt.Sprintf("%d", then.Unix()))
	mock.ExpectDel(sessionKeyPrefix + staleToken).SetVal(1)
	mock.ExpectSRem(tokensSetKey, staleToken).SetVal(1)

	authService.ScanAndClean(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginChecker_IsLogged(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	checker := NewLoginChecker(time.Hour, rdb)

	freshToken := "fresh_token"
	staleToken := "stale_token"
	now := time.Now()

	mock.ExpectGet(sessionKeyPrefix + freshToken).SetVal(fmt.Sprintf("%d", now.Add(-time.Minute).Unix()))
	logged, err := checker.IsLogged(context.Background(), freshToken)
	require.NoError(t, err)
	assert.True(t, logged)

	mock.ExpectGet(sessionKeyPrefix + staleToken).SetVal(fmt.Sprintf("%d", now.Add(-2*time.Hour).Unix()))
	logged, err = checker.IsLogged(context.Background(), staleToken)
	require.NoError(t, err)
	assert.False(t, logged)
}
