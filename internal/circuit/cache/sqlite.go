package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"circuit-copilot/internal/circuit/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite render cache
// ============================================================

// Cache хранит отрисованные SVG по ключу (вид + спецификация).
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Cache {
	return &Cache{db: db, now: time.Now}
}

// Open открывает базу по пути и применяет миграции.
func Open(ctx context.Context, dbPath string) (*Cache, error) {
	db, err := OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	c := New(db)
	if err := c.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[CACHE] render cache at %s", dbPath)
	return c, nil
}

// Init запускает миграции.
func (c *Cache) Init(ctx context.Context) error {
	if err := c.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Key — sha256 от имени вида и канонического JSON спецификации.
func Key(view string, spec *models.CircuitSpec) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("encode spec: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(view))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Entry — сохраненный результат рендера.
type Entry struct {
	View    string
	SVG     string
	Skipped int
}

func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT view, svg, skipped FROM render_cache WHERE key = ?
    `, key)

	var e Entry
	if err := row.Scan(&e.View, &e.SVG, &e.Skipped); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return &e, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO render_cache (key, view, svg, skipped, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, key, e.View, e.SVG, e.Skipped, c.now().Unix())
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Purge удаляет записи старше указанного момента.
func (c *Cache) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
        DELETE FROM render_cache WHERE created_at < ?
    `, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}
	return res.RowsAffected()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ============================================================
// Migrations
// ============================================================

func (c *Cache) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := c.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
