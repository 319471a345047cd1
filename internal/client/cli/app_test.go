package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/client/client"
	"github.com/dmitrijs2005/proofkeeper/internal/client/config"
	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerEndpointAddr:  "127.0.0.1:1",
		OnlineCheckInterval: time.Second,
		DatabaseFile:        filepath.Join(dir, "poe.db"),
		TxMortality:         time.Minute,
		LogFile:             filepath.Join(dir, "poe.log"),
	}
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	a, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	var out bytes.Buffer
	a.out = &out
	return a, &out
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	i := 0
	readPassword = func(int) ([]byte, error) {
		require.Less(t, i, len(pws), "unexpected password prompt")
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
}

// blocker returns a path whose parent is a regular file.
func blocker(t *testing.T, name string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
	return filepath.Join(f, name)
}

func TestNewApp_CreatesStateDirectories(t *testing.T) {
	c := testConfig(t)
	dir := t.TempDir()
	c.LogFile = filepath.Join(dir, "logs", "poe.log")
	c.DatabaseFile = filepath.Join(dir, "data", "poe.db")

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	a.Close()

	require.FileExists(t, c.LogFile)
	require.FileExists(t, c.DatabaseFile)
}

func TestNewApp_LogFileError(t *testing.T) {
	c := testConfig(t)
	c.LogFile = blocker(t, "poe.log")

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_DatabaseError(t *testing.T) {
	c := testConfig(t)
	c.DatabaseFile = blocker(t, "poe.db")

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestUnlock_CreatesAccountOnFirstRun(t *testing.T) {
	a, out := newTestApp(t)
	stubPasswords(t, "pw", "pw")

	kp, err := a.Unlock(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Account created: "+kp.Address())

	ok, err := a.keystore.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlock_PasswordMismatch(t *testing.T) {
	a, _ := newTestApp(t)
	stubPasswords(t, "pw", "other")

	_, err := a.Unlock(context.Background())
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestUnlock_ExistingAccountAfterRetry(t *testing.T) {
	a, out := newTestApp(t)
	created, err := a.keystore.Create(context.Background(), []byte("pw"))
	require.NoError(t, err)

	stubPasswords(t, "wrong", "pw")
	kp, err := a.Unlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, created.Address(), kp.Address())
	assert.Equal(t, 1, strings.Count(out.String(), "Wrong password"))
}

func TestUnlock_GivesUp(t *testing.T) {
	a, out := newTestApp(t)
	_, err := a.keystore.Create(context.Background(), []byte("pw"))
	require.NoError(t, err)

	stubPasswords(t, "a", "b", "c")
	_, err = a.Unlock(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, unlockAttempts, strings.Count(out.String(), "Wrong password"))
}

func TestPrintHistory(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.printHistory(ctx))
	assert.Empty(t, out.String())

	require.NoError(t, a.history.Add(ctx, &models.HistoryEntry{Digest: "0xaa", Call: "createClaim", Block: 4, Status: "Finalized"}))
	require.NoError(t, a.history.Add(ctx, &models.HistoryEntry{Digest: "0xaa", Call: "revokeClaim", Status: "Failed"}))
	require.NoError(t, a.printHistory(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Recent transactions:", lines[0])
	assert.Contains(t, lines[1], "revokeClaim")
	assert.True(t, strings.HasSuffix(lines[1], "Failed"))
	assert.True(t, strings.HasSuffix(lines[2], "Finalized #4"))
}
