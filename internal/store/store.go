// Package store is the transactional application store. Every operation
// that reads state to decide whether a write is legal runs inside a single
// serializable transaction, so concurrent submissions, reviewer decisions
// and promotions cannot interleave partial state.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"

	"github.com/lib/pq"
)

// Store wraps the postgres connection pool with the allocation engine's
// write operations.
type Store struct {
	db     *sql.DB
	logger logger.Logger

	// MaxPerInstitution caps course applications per (student, institution).
	MaxPerInstitution int

	// Review-score thresholds forwarded to the state machine.
	AdmitThreshold    int
	WaitlistThreshold int
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:                db,
		logger:            log,
		MaxPerInstitution: 2,
	}
}

// begin opens a serializable transaction. Serialization conflicts surface
// at commit time and are mapped to STORE_UNAVAILABLE for caller retry.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}
	return tx, nil
}

// mapError converts driver errors into the engine's typed failures.
// Unique-index violations on an application identity mean a concurrent
// submission won the race; serialization and connection failures are the
// retryable STORE_UNAVAILABLE kind.
func (s *Store) mapError(err error) error {
	if err == nil {
		return nil
	}

	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "23505": // unique_violation
			return errors.NewDuplicateApplicationError(pqErr.Detail)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return errors.NewStoreUnavailableError(err)
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return errors.NewStoreUnavailableError(err)
		}
	}

	if stderrors.Is(err, sql.ErrConnDone) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewStoreUnavailableError(err)
	}

	return errors.NewStoreUnavailableError(err)
}

// finish commits tx, or rolls it back when doErr is non-nil. Exactly one
// of the two happens; the returned error is already mapped.
func (s *Store) finish(tx *sql.Tx, doErr error) error {
	if doErr != nil {
		_ = tx.Rollback()
		return s.mapError(doErr)
	}
	if err := tx.Commit(); err != nil {
		return s.mapError(err)
	}
	return nil
}

// audit records an engine action in the audit log. Auditing is best-effort:
// a failed insert is logged and never fails the operation, which is why it
// runs outside the operation's transaction.
func (s *Store) audit(ctx context.Context, entityType, entityID, action, detail string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (entity_type, entity_id, action, detail, created_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		entityType, entityID, action, detail,
	)
	if err != nil {
		s.logger.Warn("audit log write failed", map[string]interface{}{
			"entityType": entityType,
			"entityId":   entityID,
			"action":     action,
			"error":      err.Error(),
		})
	}
}
