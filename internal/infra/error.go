package infra

import (
	"errors"
	"log/slog"

	"booking-engine/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs once and tags the error with the engine category its kind
// maps to, so usecases match categories without importing infra.
func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	if kind == KindNotFound {
		slogger.Debug("Repository error: "+msg, logArgs...)
	} else {
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	var out error = RepositoryError{Kind: kind, msg: msg, err: err}
	if category := kindCategory(kind); category != nil {
		out = errs.Mark(out, category)
	}
	return out
}

func kindCategory(kind RepositoryErrorKind) error {
	switch kind {
	case KindNotFound:
		return errs.ErrNotFound
	case KindConflict, KindDuplicateKey:
		return errs.ErrConflict
	case KindTransient:
		return errs.ErrTransient
	default:
		return nil
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrAdminShutdown        = "57P01"
	pgErrCannotConnectNow     = "57P03"
)

// KindOf classifies a driver error.
func KindOf(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return KindDuplicateKey
		case pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return KindConflict
		case pgErrAdminShutdown, pgErrCannotConnectNow:
			return KindTransient
		}
		return KindDBFailure
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return KindTransient
	}
	return KindDBFailure
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindTransient          RepositoryErrorKind = "TRANSIENT"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)
