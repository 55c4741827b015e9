package repository

import (
	"context"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, name, email, phone, package, package_name, persons, new_year_voucher,
	base_price, discount, discount_amount, price_after_discount, voucher_discount, total_price,
	booking_date, created_at, updated_at`

type PGBookingRepository struct {
	db  *pgxpool.Pool
	now Clock
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db, now: defaultClock}
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b  domain.Booking
		id uuid.UUID
	)
	if err := row.Scan(&id, &b.Name, &b.Email, &b.Phone, &b.Package, &b.PackageName, &b.Persons, &b.NewYearVoucher,
		&b.BasePrice, &b.Discount, &b.DiscountAmount, &b.PriceAfterDiscount, &b.VoucherDiscount, &b.TotalPrice,
		&b.BookingDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, pgErr(err)
	}
	b.ID = id.String()
	return &b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, pgErr(rows.Err())
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, uid))
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := booking.Validate(); err != nil {
		return err
	}

	id := uuid.New()
	now := r.now()
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		id, booking.Name, booking.Email, booking.Phone, booking.Package, booking.PackageName, booking.Persons,
		booking.NewYearVoucher, booking.BasePrice, booking.Discount, booking.DiscountAmount,
		booking.PriceAfterDiscount, booking.VoucherDiscount, booking.TotalPrice, booking.BookingDate, now, now)
	if err != nil {
		return pgErr(err)
	}

	booking.ID = id.String()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (r *PGBookingRepository) Replace(ctx context.Context, id string, booking *domain.Booking) (*domain.Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `UPDATE bookings SET
		name=$2, email=$3, phone=$4, package=$5, package_name=$6, persons=$7, new_year_voucher=$8,
		base_price=$9, discount=$10, discount_amount=$11, price_after_discount=$12, voucher_discount=$13,
		total_price=$14, booking_date=$15, updated_at=$16
		WHERE id=$1 RETURNING `+bookingColumns,
		uid, booking.Name, booking.Email, booking.Phone, booking.Package, booking.PackageName, booking.Persons,
		booking.NewYearVoucher, booking.BasePrice, booking.Discount, booking.DiscountAmount,
		booking.PriceAfterDiscount, booking.VoucherDiscount, booking.TotalPrice, booking.BookingDate, r.now())
	return scanBooking(row)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return scanBooking(r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 RETURNING `+bookingColumns, uid))
}

var _ BookingRepository = (*PGBookingRepository)(nil)
