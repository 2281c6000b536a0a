package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdom "vreetory/internal/domain/inventory"
	udom "vreetory/internal/domain/user"
	appcfg "vreetory/internal/infra/config"
	"vreetory/internal/infra/credentials"
)

type stubUsers struct {
	users []udom.User
	err   error
	reads int
}

func (s *stubUsers) Stream(_ context.Context, fn func(udom.User) error) error {
	s.reads++
	for _, u := range s.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return s.err
}

type stubItems struct {
	items   []invdom.Item
	listErr error
	fail    map[string]bool
	reads   int
	writes  int
}

func (s *stubItems) ListAll(context.Context) ([]invdom.Item, error) {
	s.reads++
	return s.items, s.listErr
}

func (s *stubItems) UpdateMinimumStock(_ context.Context, id, _ string) error {
	s.writes++
	if s.fail[id] {
		return errors.New("permission denied")
	}
	return nil
}

type opener struct {
	backend *Backend
	err     error
	calls   int
	gotKey  string
	closed  int
}

func (o *opener) open(_ context.Context, _ *appcfg.Config, credFile string) (*Backend, error) {
	o.calls++
	o.gotKey = credFile
	if o.err != nil {
		return nil, o.err
	}
	o.backend.Close = func() error {
		o.closed++
		return nil
	}
	return o.backend, nil
}

func testConfig(t *testing.T, keyNames ...string) *appcfg.Config {
	t.Helper()
	dir := t.TempDir()
	for _, n := range keyNames {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("{}"), 0o600))
	}
	return &appcfg.Config{
		CredentialsDir:         dir,
		UsersCollection:        "users",
		ItemsCollection:        "items",
		MinimumStockUpdateMode: appcfg.UpdateModeSequential,
	}
}

func TestUpdateMinimumStockMissingCredential(t *testing.T) {
	var buf bytes.Buffer
	items := &stubItems{}
	op := &opener{backend: &Backend{Items: items}}

	err := NewRunner(testConfig(t), op.open, &buf).UpdateMinimumStock(context.Background())

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, credentials.ErrNotFound)
	assert.Zero(t, op.calls)
	assert.Zero(t, items.reads)
	assert.Zero(t, items.writes)
	assert.Contains(t, buf.String(), "❌ Error: Cannot find Firebase service account key file")
	assert.Contains(t, buf.String(), "Looking for: serviceAccountKey.json or vreetory-app-firebase-adminsdk-*.json")
}

func TestUpdateMinimumStockEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	items := &stubItems{}
	op := &opener{backend: &Backend{Items: items}}
	cfg := testConfig(t, "serviceAccountKey.json")

	require.NoError(t, NewRunner(cfg, op.open, &buf).UpdateMinimumStock(context.Background()))

	assert.Equal(t, filepath.Join(cfg.CredentialsDir, "serviceAccountKey.json"), op.gotKey)
	assert.Equal(t, 1, items.reads)
	assert.Zero(t, items.writes)
	assert.Equal(t, 1, op.closed)
	assert.Contains(t, buf.String(), "🔑 Using service account:")
	assert.Contains(t, buf.String(), "✓ Firebase initialized successfully")
}

func TestUpdateMinimumStockPartialFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	items := &stubItems{
		items: []invdom.Item{{ID: "a", ItemName: "A"}, {ID: "b", ItemName: "B"}, {ID: "c", ItemName: "C"}},
		fail:  map[string]bool{"a": true},
	}
	op := &opener{backend: &Backend{Items: items}}

	err := NewRunner(testConfig(t, "vreetory-app-firebase-adminsdk-x.json"), op.open, &buf).
		UpdateMinimumStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, items.writes)
	assert.Contains(t, buf.String(), "✗ Error updating A: permission denied")
	assert.Contains(t, buf.String(), "✅ Successfully updated 2/3 items")
}

func TestUpdateMinimumStockInitFailure(t *testing.T) {
	var buf bytes.Buffer
	op := &opener{err: errors.New("invalid key")}

	err := NewRunner(testConfig(t, "serviceAccountKey.json"), op.open, &buf).UpdateMinimumStock(context.Background())

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, op.calls)
	assert.Contains(t, buf.String(), "❌ Error initializing Firebase: invalid key")
	assert.Contains(t, buf.String(), "Try: firebase login")
	assert.NotContains(t, buf.String(), "Fetching items")
}

func TestUpdateMinimumStockFetchFailure(t *testing.T) {
	var buf bytes.Buffer
	items := &stubItems{listErr: errors.New("unavailable")}
	op := &opener{backend: &Backend{Items: items}}

	err := NewRunner(testConfig(t, "serviceAccountKey.json"), op.open, &buf).UpdateMinimumStock(context.Background())

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, items.writes)
	assert.Equal(t, 1, op.closed)
	assert.Contains(t, buf.String(), "❌ Error: list items: unavailable")
}

func TestUpdateMinimumStockInvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	op := &opener{backend: &Backend{Items: &stubItems{}}}
	cfg := testConfig(t, "serviceAccountKey.json")
	cfg.MinimumStockUpdateMode = "turbo"

	err := NewRunner(cfg, op.open, &buf).UpdateMinimumStock(context.Background())
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, op.calls)
}

func TestCheckUserApproval(t *testing.T) {
	var buf bytes.Buffer
	users := &stubUsers{users: []udom.User{
		udom.FromData("u1", map[string]any{"email": "a@example.com", "is_approved": "True"}),
	}}
	op := &opener{backend: &Backend{Users: users}}
	cfg := testConfig(t, "google-services.json")

	require.NoError(t, NewRunner(cfg, op.open, &buf).CheckUserApproval(context.Background()))

	assert.Equal(t, filepath.Join(cfg.CredentialsDir, "google-services.json"), op.gotKey)
	assert.Equal(t, 1, users.reads)
	assert.Equal(t, 1, op.closed)
	assert.Contains(t, buf.String(), "is_approved: True (type: string)")
	assert.Contains(t, buf.String(), "Can access: False")
	assert.Contains(t, buf.String(), "⚠️  Users: 1, can access: 0, is_approved missing: 0, is_approved not boolean: 1")
	assert.NotContains(t, buf.String(), "Using service account")
}

func TestCheckUserApprovalMissingCredential(t *testing.T) {
	var buf bytes.Buffer
	op := &opener{backend: &Backend{Users: &stubUsers{}}}

	err := NewRunner(testConfig(t, "serviceAccountKey.json"), op.open, &buf).CheckUserApproval(context.Background())
	assert.ErrorIs(t, err, credentials.ErrNotFound)
	assert.Zero(t, op.calls)
	assert.Contains(t, buf.String(), "Looking for: google-services.json")
}

func TestCheckUserApprovalStreamFailure(t *testing.T) {
	var buf bytes.Buffer
	op := &opener{backend: &Backend{Users: &stubUsers{err: errors.New("deadline exceeded")}}}

	err := NewRunner(testConfig(t, "google-services.json"), op.open, &buf).CheckUserApproval(context.Background())
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, buf.String(), "❌ Error: stream users: deadline exceeded")
}

func TestRunnerNilOpener(t *testing.T) {
	err := NewRunner(testConfig(t, "google-services.json"), nil, &bytes.Buffer{}).CheckUserApproval(context.Background())
	var fe *FatalError
	assert.ErrorAs(t, err, &fe)
}
