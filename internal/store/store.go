// Package store persists saved timetable selections in SQLite and hands out
// short ids for sharing them.
package store

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/ttg/internal/catalog"
)

const (
	// MaxPayloadSize is the largest encoded state accepted by Save, in bytes.
	MaxPayloadSize = 5000
	// IDLength is the length of generated ids.
	IDLength = 7

	idAlphabet  = "abcdefghijklmnopqrstuvwxyz1234567890"
	maxAttempts = 16
	timeLayout  = "2006-01-02 15:04:05"
)

// Store errors.
var (
	ErrNotFound        = errors.New("saved schedule not found")
	ErrPayloadTooLarge = errors.New("schedule is too large to save")
	ErrInvalidID       = errors.New("invalid schedule id")
	ErrIDExhausted     = errors.New("could not allocate a free schedule id")
)

// Store keeps saved states keyed by short id.
type Store struct {
	db       *sql.DB
	logger   *zap.Logger
	resolver LegacyResolver
	now      func() time.Time
	newID    func() (string, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithResolver sets the resolver consulted when an id is not stored locally.
func WithResolver(r LegacyResolver) Option {
	return func(s *Store) {
		s.resolver = r
	}
}

// WithClock overrides the time source used for access timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New opens the database at path and runs migrations.
func New(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  randomID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a state and returns its id.
// Saving a state identical to one already stored returns the existing id.
func (s *Store) Save(ctx context.Context, st catalog.State) (string, error) {
	if err := st.Validate(); err != nil {
		return "", err
	}

	data, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(data), MaxPayloadSize)
	}
	hash := digest(data)

	id, err := s.findByContent(ctx, hash, data)
	if err != nil {
		return "", err
	}
	if id != "" {
		if err := s.touch(ctx, id); err != nil {
			return "", err
		}
		s.logger.Debug("schedule already saved", zap.String("id", id))
		return id, nil
	}

	for range maxAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generating id: %w", err)
		}
		taken, err := s.exists(ctx, id)
		if err != nil {
			return "", err
		}
		if taken {
			s.logger.Debug("schedule id collision", zap.String("id", id))
			continue
		}
		if err := s.insert(ctx, id, hash, data); err != nil {
			return "", err
		}
		s.logger.Info("schedule saved", zap.String("id", id), zap.Int("bytes", len(data)))
		return id, nil
	}

	return "", ErrIDExhausted
}

// Load returns the state saved under id and refreshes its last access time.
//
// When the id is not stored locally and a resolver is configured, the
// resolver's document is stored under the same id and returned.
func (s *Store) Load(ctx context.Context, id string) (catalog.State, error) {
	if !validID(id) {
		return catalog.State{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM saved_schedules WHERE id = ?`, id,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return s.loadLegacy(ctx, id)
	}
	if err != nil {
		return catalog.State{}, fmt.Errorf("getting schedule %s: %w", id, err)
	}

	if err := s.touch(ctx, id); err != nil {
		return catalog.State{}, err
	}

	st, err := catalog.ParseState(bytes.NewReader([]byte(data)))
	if err != nil {
		return catalog.State{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	return st, nil
}

func (s *Store) loadLegacy(ctx context.Context, id string) (catalog.State, error) {
	if s.resolver == nil {
		return catalog.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	raw, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		s.logger.Debug("legacy lookup failed", zap.String("id", id), zap.Error(err))
		if errors.Is(err, ErrNotFound) {
			return catalog.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return catalog.State{}, fmt.Errorf("resolving legacy schedule %s: %w", id, err)
	}

	st, err := catalog.ParseState(bytes.NewReader(raw))
	if err != nil {
		return catalog.State{}, fmt.Errorf("legacy schedule %s: %w", id, err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return catalog.State{}, fmt.Errorf("encoding state: %w", err)
	}
	if err := s.insert(ctx, id, digest(data), data); err != nil {
		return catalog.State{}, err
	}

	s.logger.Info("legacy schedule imported", zap.String("id", id))
	return st, nil
}

// Reap deletes every schedule not accessed since before and returns how many
// were removed.
func (s *Store) Reap(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_schedules WHERE last_access_dt < ?`,
		formatTime(before),
	)
	if err != nil {
		return 0, fmt.Errorf("reaping schedules: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	s.logger.Info("reaped schedules", zap.Int64("deleted", n), zap.Time("before", before))
	return n, nil
}

// LastAccess returns when the schedule saved under id was last saved or loaded.
func (s *Store) LastAccess(ctx context.Context, id string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_access_dt FROM saved_schedules WHERE id = ?`, id,
	).Scan(&raw)

	if err == sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting schedule %s: %w", id, err)
	}

	t, err := parseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last access: %w", err)
	}
	return t, nil
}

// findByContent returns the id of a stored document equal to data, or "".
func (s *Store) findByContent(ctx context.Context, hash string, data []byte) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM saved_schedules WHERE hash = ? ORDER BY created_at`, hash,
	)
	if err != nil {
		return "", fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, stored string
		if err := rows.Scan(&id, &stored); err != nil {
			return "", fmt.Errorf("scanning schedule: %w", err)
		}
		// MD5 collisions are possible, so compare the documents too.
		if stored == string(data) {
			return id, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating schedules: %w", err)
	}

	return "", nil
}

func (s *Store) exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM saved_schedules WHERE id = ?`, id,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking id %s: %w", id, err)
	}
	return true, nil
}

func (s *Store) insert(ctx context.Context, id, hash string, data []byte) error {
	now := formatTime(s.now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_schedules (id, hash, data, last_access_dt, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, hash, string(data), now, now)
	if err != nil {
		return fmt.Errorf("inserting schedule %s: %w", id, err)
	}
	return nil
}

func (s *Store) touch(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE saved_schedules SET last_access_dt = ? WHERE id = ?`,
		formatTime(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("updating last access of %s: %w", id, err)
	}
	return nil
}

func digest(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func randomID() (string, error) {
	b := make([]byte, IDLength)
	limit := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}

// validID accepts generated ids and legacy short-link ids.
func validID(id string) bool {
	if id == "" || len(id) > 32 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
