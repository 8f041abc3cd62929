package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"propdesk/config"
	"propdesk/models"
)

// testStorage runs the fiber.Storage behaviour the configuration store
// relies on. expire moves the backend's clock forward.
func testStorage(t *testing.T, s fiber.Storage, expire func(time.Duration)) {
	t.Helper()

	t.Run("missing key reads as nil", func(t *testing.T) {
		v, err := s.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set overwrites an existing key", func(t *testing.T) {
		require.NoError(t, s.Set("tenant:a:serviceRequestTeams", []byte(`[1]`), 0))
		require.NoError(t, s.Set("tenant:a:serviceRequestTeams", []byte(`[1,2]`), 0))

		v, err := s.Get("tenant:a:serviceRequestTeams")
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(v))
	})

	t.Run("empty key or value is ignored", func(t *testing.T) {
		require.NoError(t, s.Set("", []byte("x"), 0))
		require.NoError(t, s.Set("empty", nil, 0))

		v, err := s.Get("empty")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("expired key reads as missing", func(t *testing.T) {
		require.NoError(t, s.Set("short", []byte("x"), time.Minute))
		require.NoError(t, s.Set("long", []byte("y"), 0))

		v, err := s.Get("short")
		require.NoError(t, err)
		assert.Equal(t, "x", string(v))

		expire(2 * time.Minute)

		v, err = s.Get("short")
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = s.Get("long")
		require.NoError(t, err)
		assert.Equal(t, "y", string(v))
	})

	t.Run("delete and reset", func(t *testing.T) {
		require.NoError(t, s.Set("a", []byte("1"), 0))
		require.NoError(t, s.Set("b", []byte("2"), 0))

		require.NoError(t, s.Delete("a"))
		v, err := s.Get("a")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, s.Reset())
		v, err = s.Get("b")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("sections round trip through a store", func(t *testing.T) {
		st := Open(s, "acme")
		require.NoError(t, st.Persist(st.Snapshot()))

		want, err := encodeSections(st.Snapshot())
		require.NoError(t, err)
		got, err := encodeSections(Open(s, "acme").Snapshot())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestMemoryStorageBehaviour(t *testing.T) {
	m := NewMemoryStorage()
	base := time.Now()
	var offset time.Duration
	m.now = func() time.Time { return base.Add(offset) }

	testStorage(t, m, func(d time.Duration) { offset += d })
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStorage(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testStorage(t, s, mr.FastForward)
}

func TestRedisStorageUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStorage(config.RedisConfig{Address: addr})
	assert.Error(t, err)
}

// The postgres backend only uses portable gorm calls, so it runs against
// sqlite here. Set PROPDESK_TEST_POSTGRES_DSN to run it on a real server.
func TestPostgresStorageOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "storage.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	runPostgresStorage(t, db)
}

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("PROPDESK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PROPDESK_TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	runPostgresStorage(t, db)
}

func runPostgresStorage(t *testing.T, db *gorm.DB) {
	t.Helper()
	s, err := NewPostgresStorage(db)
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	t.Cleanup(func() { _ = s.Close() })

	base := time.Now()
	var offset time.Duration
	s.now = func() time.Time { return base.Add(offset) }

	testStorage(t, s, func(d time.Duration) { offset += d })

	t.Run("upsert keeps one row per key", func(t *testing.T) {
		require.NoError(t, s.Set("dup", []byte("1"), 0))
		require.NoError(t, s.Set("dup", []byte("2"), 0))

		var count int64
		require.NoError(t, db.Model(&models.StorageEntry{}).Where("key = ?", "dup").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
