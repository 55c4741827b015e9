package repository

import (
	"context"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGEnquiryRepository struct {
	db  *pgxpool.Pool
	now Clock
}

func NewEnquiryRepository(db *pgxpool.Pool) EnquiryRepository {
	return &PGEnquiryRepository{db: db, now: defaultClock}
}

func (r *PGEnquiryRepository) List(ctx context.Context) ([]domain.Enquiry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone, package, message, created_at, updated_at
		FROM enquiries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	enquiries := make([]domain.Enquiry, 0)
	for rows.Next() {
		var (
			e  domain.Enquiry
			id uuid.UUID
		)
		if err := rows.Scan(&id, &e.Name, &e.Email, &e.Phone, &e.Package, &e.Message, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, pgErr(err)
		}
		e.ID = id.String()
		enquiries = append(enquiries, e)
	}
	return enquiries, pgErr(rows.Err())
}

func (r *PGEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if err := enquiry.Validate(); err != nil {
		return err
	}

	id := uuid.New()
	now := r.now()
	_, err := r.db.Exec(ctx, `INSERT INTO enquiries (id, name, email, phone, package, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Package, enquiry.Message, now, now)
	if err != nil {
		return pgErr(err)
	}

	enquiry.ID = id.String()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now
	return nil
}

var _ EnquiryRepository = (*PGEnquiryRepository)(nil)
