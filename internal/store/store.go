package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"fyyur/internal/logging"
	"fyyur/internal/metrics"
)

// Kind classifies a gateway failure so callers can pick a response without
// inspecting driver errors.
type Kind uint8

const (
	// KindPersistence covers connection faults and anything unclassified.
	KindPersistence Kind = iota
	// KindNotFound means the addressed record does not exist.
	KindNotFound
	// KindConflict means the database rejected the write on a constraint.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "persistence"
	}
}

var (
	// ErrNotFound is wrapped by every entity-specific not-found error.
	ErrNotFound = errors.New("not found")
	// ErrVenueNotFound signals an unknown venue id.
	ErrVenueNotFound = fmt.Errorf("venue %w", ErrNotFound)
	// ErrArtistNotFound signals an unknown artist id.
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
)

// ConflictError reports a constraint violation raised by Postgres.
type ConflictError struct {
	Constraint string
	Code       string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("constraint violation (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("constraint %s violated (%s): %v", e.Constraint, e.Code, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// KindOf classifies err. It returns KindPersistence for nil.
func KindOf(err error) Kind {
	var conflict *ConflictError
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &conflict):
		return KindConflict
	default:
		return KindPersistence
	}
}

// Store provides persistence backed by Postgres.
type Store struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Option customises a Store.
type Option func(*Store)

// WithMetrics records transaction timings and failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn inside a transaction. Any error rolls the transaction back and
// is logged with the operation name before being returned.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	start := time.Now()
	defer func() {
		failure := ""
		if err != nil {
			failure = KindOf(err).String()
		}
		s.metrics.RecordTx(op, time.Since(start), failure)
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		if tx == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}

		event := logging.FromContext(ctx).Error()
		if KindOf(err) == KindNotFound {
			event = logging.FromContext(ctx).Warn()
		}
		event.Err(err).Str("operation", op).Msg("transaction rolled back")
	}()

	if err = fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, classify(err))
	}
	tx = nil

	return nil
}

// classify wraps Postgres integrity violations in a ConflictError.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	// Class 23: integrity constraint violation.
	if strings.HasPrefix(pgErr.Code, "23") {
		return &ConflictError{Constraint: pgErr.ConstraintName, Code: pgErr.Code, Err: err}
	}
	return err
}

// containsPattern builds an ILIKE pattern matching term anywhere, with LIKE
// wildcards in term matched literally. An empty term matches everything.
func containsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nonNilGenres(genres []string) []string {
	if genres == nil {
		return []string{}
	}
	return genres
}
