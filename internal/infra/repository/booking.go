package repository

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, reference, resource_id, customer_id, start_date, end_date, party_size, nights,
	unit_rate::text, total_amount::text, currency, status, payment_status,
	contact_name, contact_email, contact_phone, special_requests,
	cancellation_reason, refund_amount::text, created_at, updated_at`

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: dbtx, logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, reference, resource_id, customer_id, start_date, end_date, party_size, nights,
			unit_rate, total_amount, currency, status, payment_status,
			contact_name, contact_email, contact_phone, special_requests,
			cancellation_reason, refund_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		s.ID, s.Reference, s.ResourceID, s.CustomerID,
		pgconv.DateToPgtype(s.DateRange.Start()), pgconv.DateToPgtype(s.DateRange.End()),
		s.PartySize, s.Nights,
		s.UnitRate.Amount().String(), s.TotalAmount.Amount().String(), s.TotalAmount.Currency(),
		s.Status.String(), s.PaymentStatus.String(),
		s.Contact.Name, s.Contact.Email, s.Contact.Phone, s.SpecialRequests,
		pgconv.StringPtrToPgtype(s.CancellationReason), moneyPtrToText(s.RefundAmount),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get booking", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	s := b.Snapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $2, cancellation_reason = $3, refund_amount = $4, updated_at = $5
		WHERE id = $1 AND status = $6`,
		s.ID, s.Status.String(), pgconv.StringPtrToPgtype(s.CancellationReason),
		moneyPtrToText(s.RefundAmount), s.UpdatedAt, expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "booking status changed concurrently", nil)
	}
	return nil
}

func (r *BookingRepository) UpdatePayment(ctx context.Context, b *booking.Booking, expected booking.PaymentStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET payment_status = $2, updated_at = $3
		WHERE id = $1 AND payment_status = $4`,
		b.ID(), b.PaymentStatus().String(), b.UpdatedAt(), expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "payment status changed concurrently", nil)
	}
	return nil
}

func (r *BookingRepository) ListActiveByResource(ctx context.Context, resourceID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE resource_id = $1 AND status IN ('pending', 'confirmed')
		ORDER BY start_date, id`, resourceID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list active bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list active bookings", err)
	}
	return out, nil
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		s                     booking.Snapshot
		start, end            pgtype.Date
		rate, total, cur      string
		status, paymentStatus string
		specialRequests       string
		cancellationReason    pgtype.Text
		refund                pgtype.Text
		createdAt, updatedAt  time.Time
	)
	err := row.Scan(
		&s.ID, &s.Reference, &s.ResourceID, &s.CustomerID, &start, &end, &s.PartySize, &s.Nights,
		&rate, &total, &cur, &status, &paymentStatus,
		&s.Contact.Name, &s.Contact.Email, &s.Contact.Phone, &specialRequests,
		&cancellationReason, &refund, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.UnitRate, err = money.Parse(rate, cur); err != nil {
		return nil, err
	}
	if s.TotalAmount, err = money.Parse(total, cur); err != nil {
		return nil, err
	}
	if refund.Valid {
		m, err := money.Parse(refund.String, cur)
		if err != nil {
			return nil, err
		}
		s.RefundAmount = &m
	}
	s.DateRange = daterange.Reconstruct(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
	s.Status = booking.Status(status)
	s.PaymentStatus = booking.PaymentStatus(paymentStatus)
	s.SpecialRequests = specialRequests
	s.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
	return booking.Reconstruct(s), nil
}

// moneyPtrToText keeps a nil amount as SQL NULL. Plain strings are sent in
// text format, which Postgres parses into NUMERIC without loss.
func moneyPtrToText(m *money.Money) *string {
	if m == nil {
		return nil
	}
	s := m.Amount().String()
	return &s
}
