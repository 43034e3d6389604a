package store

import (
	"errors"

	"spotstay/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeForeignKeyViolation  = "23503"
	pgErrCodeUniqueViolation      = "23505"
	pgErrCodeExclusionViolation   = "23P01"
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

// wrapPgErr classifies low-level postgres errors into repository error
// kinds so the usecase layer can branch without knowing SQLSTATEs.
func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
			return infra.WrapRepoErr(msg, err, infra.KindSerialization)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
