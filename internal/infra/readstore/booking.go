package readstore

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		v                  queries.BookingView
		start, end         pgtype.Date
		cancellationReason pgtype.Text
		refund             pgtype.Text
	)
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.reference, b.resource_id, r.name, b.customer_id, b.start_date, b.end_date,
			b.nights, b.party_size, to_char(b.unit_rate, 'FM999999999990.00'), to_char(b.total_amount, 'FM999999999990.00'),
			b.currency, b.status, b.payment_status, b.contact_name, b.contact_email, b.contact_phone,
			b.special_requests, b.cancellation_reason, to_char(b.refund_amount, 'FM999999999990.00'),
			b.created_at, b.updated_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.id = $1`, id,
	).Scan(
		&v.ID, &v.Reference, &v.ResourceID, &v.ResourceName, &v.CustomerID, &start, &end,
		&v.Nights, &v.PartySize, &v.UnitRate, &v.TotalAmount,
		&v.Currency, &v.Status, &v.PaymentStatus, &v.Contact.Name, &v.Contact.Email, &v.Contact.Phone,
		&v.SpecialRequests, &cancellationReason, &refund,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get booking view", err)
	}
	v.StartDate = pgconv.DateFromPgtype(start).Format(daterange.DateLayout)
	v.EndDate = pgconv.DateFromPgtype(end).Format(daterange.DateLayout)
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	v.RefundAmount = pgconv.StringPtrFromPgtype(refund)
	return &v, nil
}

func (r *BookingReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.BookingListItem, error) {
	const base = `
		SELECT b.id, b.reference, b.resource_id, r.name, b.start_date, b.end_date, b.status,
			b.payment_status, to_char(b.total_amount, 'FM999999999990.00'), b.currency, b.created_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.customer_id = $1`

	sql := base + ` ORDER BY b.created_at DESC, b.id DESC LIMIT $2`
	args := []any{customerID, limit}
	if after != nil {
		sql = base + ` AND (b.created_at, b.id) < ($3, $4) ORDER BY b.created_at DESC, b.id DESC LIMIT $2`
		args = append(args, after.CreatedAt, after.ID)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingListItem
	for rows.Next() {
		var (
			it         queries.BookingListItem
			start, end pgtype.Date
		)
		err := rows.Scan(&it.ID, &it.Reference, &it.ResourceID, &it.ResourceName, &start, &end, &it.Status,
			&it.PaymentStatus, &it.TotalAmount, &it.Currency, &it.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		it.StartDate = pgconv.DateFromPgtype(start).Format(daterange.DateLayout)
		it.EndDate = pgconv.DateFromPgtype(end).Format(daterange.DateLayout)
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list bookings", err)
	}
	return out, nil
}
