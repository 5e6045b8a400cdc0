//go:build unit

package infra_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: infra.KindConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: infra.KindConflict},
		{name: "lock not available", err: &pgconn.PgError{Code: "55P03"}, want: infra.KindConflict},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: infra.KindTransient},
		{name: "other pg error", err: &pgconn.PgError{Code: "42601"}, want: infra.KindDBFailure},
		{name: "wrapped pg error", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: infra.KindDuplicateKey},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: infra.KindTransient},
		{name: "plain error", err: errors.New("boom"), want: infra.KindDBFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, infra.KindOf(tc.err))
		})
	}
}

func TestWrapRepoErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cause := errors.New("driver said no")

	cases := []struct {
		kind     infra.RepositoryErrorKind
		category error
	}{
		{kind: infra.KindNotFound, category: errs.ErrNotFound},
		{kind: infra.KindConflict, category: errs.ErrConflict},
		{kind: infra.KindDuplicateKey, category: errs.ErrConflict},
		{kind: infra.KindTransient, category: errs.ErrTransient},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			err := infra.WrapRepoErr(logger, tc.kind, "load booking", cause)
			assert.True(t, errs.Is(err, tc.category))
			assert.True(t, infra.IsKind(err, tc.kind))
			assert.ErrorContains(t, err, "driver said no")
		})
	}

	t.Run("db failure carries no category", func(t *testing.T) {
		err := infra.WrapRepoErr(logger, infra.KindDBFailure, "load booking", cause)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		for _, category := range []error{errs.ErrNotFound, errs.ErrConflict, errs.ErrTransient, errs.ErrValidation} {
			assert.False(t, errs.Is(err, category))
		}
	})

	t.Run("nil cause", func(t *testing.T) {
		err := infra.WrapRepoErr(logger, infra.KindNotFound, "booking not found", nil)
		assert.EqualError(t, err, "NOT_FOUND: booking not found")
	})
}
