package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/reservation/dto"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertReservation = `
    INSERT INTO reservations (
        id, client_id, guest_name, guest_email, guest_phone, check_in, check_out, guests,
        room_id, client_type, company_name, company_rut, billing_name, billing_rut,
        billing_address, authorized_by, status, total_amount, deposit_amount, paid_amount,
        pending_amount, payment_status, payment_method, discount_type, discount_value,
        discount_amount, discount_reason, surcharge_type, surcharge_value, surcharge_amount,
        surcharge_reason, created_by, updated_by, created_at, updated_at
    )
    VALUES (
        :id, :client_id, :guest_name, :guest_email, :guest_phone, :check_in, :check_out, :guests,
        :room_id, :client_type, :company_name, :company_rut, :billing_name, :billing_rut,
        :billing_address, :authorized_by, :status, :total_amount, :deposit_amount, :paid_amount,
        :pending_amount, :payment_status, :payment_method, :discount_type, :discount_value,
        :discount_amount, :discount_reason, :surcharge_type, :surcharge_value, :surcharge_amount,
        :surcharge_reason, :created_by, :updated_by, :created_at, :updated_at
    )
`

const insertProduct = `
    INSERT INTO reservation_products (id, reservation_id, product_id, quantity, unit_price, total_price, created_at)
    VALUES (:id, :reservation_id, :product_id, :quantity, :unit_price, :total_price, :created_at)
`

const insertComment = `
    INSERT INTO reservation_comments (id, reservation_id, text, author, comment_type, created_at)
    VALUES (:id, :reservation_id, :text, :author, :comment_type, :created_at)
`

const insertPayment = `
    INSERT INTO reservation_payments (id, reservation_id, amount, payment_method, reference, notes, processed_by, created_at)
    VALUES (:id, :reservation_id, :amount, :payment_method, :reference, :notes, :processed_by, :created_at)
`

func (r *PGRepository) Create(ctx context.Context, res *model.Reservation) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if err := checkAvailability(ctx, tx, res.RoomID, res.CheckIn, res.CheckOut, ""); err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertReservation, res); err != nil {
			return err
		}
		for i := range res.Products {
			if _, err := tx.NamedExecContext(ctx, insertProduct, &res.Products[i]); err != nil {
				return err
			}
		}
		for i := range res.Comments {
			if _, err := tx.NamedExecContext(ctx, insertComment, &res.Comments[i]); err != nil {
				return err
			}
		}
		for i := range res.Payments {
			if _, err := tx.NamedExecContext(ctx, insertPayment, &res.Payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkAvailability locks the room row so concurrent bookings of the same
// room serialize, then looks for overlapping active reservations.
func checkAvailability(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) error {
	var locked string
	err := tx.GetContext(ctx, &locked, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("room %s: %w", roomID, model.ErrNotFound)
		}
		return err
	}

	var overlapping int
	err = tx.GetContext(ctx, &overlapping, `
        SELECT count(*) FROM reservations
        WHERE room_id = $1
          AND status NOT IN ('finalizada', 'cancelled')
          AND check_in < $3 AND check_out > $2
          AND id::text <> $4
    `, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return fmt.Errorf("%w: room is already booked for those dates", model.ErrConflict)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.DB.GetContext(ctx, &res, `SELECT * FROM reservations WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGRepository) LoadDetails(ctx context.Context, res *model.Reservation) error {
	if err := r.DB.SelectContext(ctx, &res.Products,
		`SELECT * FROM reservation_products WHERE reservation_id = $1 ORDER BY created_at`, res.ID); err != nil {
		return err
	}
	if err := r.DB.SelectContext(ctx, &res.Comments,
		`SELECT * FROM reservation_comments WHERE reservation_id = $1 ORDER BY created_at`, res.ID); err != nil {
		return err
	}
	payments, err := r.ListPayments(ctx, res.ID)
	if err != nil {
		return err
	}
	res.Payments = payments
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ReservationFilters) ([]model.Reservation, int, error) {
	var reservations []model.Reservation
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.ClientType != "" {
		conditions = append(conditions, "client_type = :client_type")
		args["client_type"] = f.ClientType
	}
	if f.CheckInFrom != nil {
		conditions = append(conditions, "check_in >= :check_in_from")
		args["check_in_from"] = *f.CheckInFrom
	}
	if f.CheckInTo != nil {
		conditions = append(conditions, "check_in <= :check_in_to")
		args["check_in_to"] = *f.CheckInTo
	}
	if f.RoomID != "" {
		conditions = append(conditions, "room_id = :room_id")
		args["room_id"] = f.RoomID
	}
	if f.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = :payment_status")
		args["payment_status"] = f.PaymentStatus
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(guest_name ILIKE :search OR guest_email ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM reservations"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM reservations" + whereClause + " ORDER BY check_in DESC, created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &reservations, args)
	return reservations, count, err
}

func (r *PGRepository) Update(ctx context.Context, res *model.Reservation) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if err := checkAvailability(ctx, tx, res.RoomID, res.CheckIn, res.CheckOut, res.ID); err != nil {
			return err
		}
		_, err := tx.NamedExecContext(ctx, `
            UPDATE reservations SET
                guest_name = :guest_name,
                guest_email = :guest_email,
                guest_phone = :guest_phone,
                check_in = :check_in,
                check_out = :check_out,
                guests = :guests,
                room_id = :room_id,
                company_name = :company_name,
                company_rut = :company_rut,
                billing_name = :billing_name,
                billing_rut = :billing_rut,
                billing_address = :billing_address,
                authorized_by = :authorized_by,
                total_amount = :total_amount,
                pending_amount = :pending_amount,
                payment_status = :payment_status,
                discount_type = :discount_type,
                discount_value = :discount_value,
                discount_amount = :discount_amount,
                discount_reason = :discount_reason,
                surcharge_type = :surcharge_type,
                surcharge_value = :surcharge_value,
                surcharge_amount = :surcharge_amount,
                surcharge_reason = :surcharge_reason,
                updated_by = :updated_by,
                updated_at = :updated_at
            WHERE id = :id
        `, res)
		return err
	})
}

func (r *PGRepository) ChangeStatus(ctx context.Context, id, from, to string, comment *model.ReservationComment, roomStatus string) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var roomID string
		err := tx.GetContext(ctx, &roomID, `
            UPDATE reservations SET status = $1, updated_at = NOW()
            WHERE id = $2 AND status = $3
            RETURNING room_id
        `, to, id, from)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: reservation %s is no longer %s", model.ErrInvalidTransition, id, from)
			}
			return err
		}
		if comment != nil {
			if _, err := tx.NamedExecContext(ctx, insertComment, comment); err != nil {
				return err
			}
		}
		if roomStatus != "" {
			if _, err := tx.ExecContext(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`, roomStatus, roomID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepository) AddPayment(ctx context.Context, p *model.ReservationPayment, comment *model.ReservationComment) (*model.Reservation, error) {
	var res model.Reservation
	err := postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &res, `SELECT * FROM reservations WHERE id = $1 FOR UPDATE`, p.ReservationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("reservation %s: %w", p.ReservationID, model.ErrNotFound)
			}
			return err
		}
		if res.Status == model.StatusCancelled {
			return fmt.Errorf("%w: reservation is cancelled", model.ErrInvalidTransition)
		}

		res.ApplyPayment(p.Amount)
		res.UpdatedAt = time.Now()
		if _, err := tx.NamedExecContext(ctx, `
            UPDATE reservations SET
                paid_amount = :paid_amount,
                pending_amount = :pending_amount,
                payment_status = :payment_status,
                updated_at = :updated_at
            WHERE id = :id
        `, &res); err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertPayment, p); err != nil {
			return err
		}
		if comment != nil {
			if _, err := tx.NamedExecContext(ctx, insertComment, comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PGRepository) ListPayments(ctx context.Context, reservationID string) ([]model.ReservationPayment, error) {
	var payments []model.ReservationPayment
	err := r.DB.SelectContext(ctx, &payments,
		`SELECT * FROM reservation_payments WHERE reservation_id = $1 ORDER BY created_at`, reservationID)
	return payments, err
}

func (r *PGRepository) AddComment(ctx context.Context, c *model.ReservationComment) error {
	_, err := r.DB.NamedExecContext(ctx, insertComment, c)
	return err
}

func (r *PGRepository) Stats(ctx context.Context) (*model.ReservationStats, error) {
	var stats model.ReservationStats
	err := r.DB.GetContext(ctx, &stats, `
        SELECT
            count(*) AS total,
            count(*) FILTER (WHERE status = 'prereserva') AS prereserva,
            count(*) FILTER (WHERE status = 'confirmada') AS confirmada,
            count(*) FILTER (WHERE status = 'en_curso') AS en_curso,
            count(*) FILTER (WHERE status = 'finalizada') AS finalizada,
            count(*) FILTER (WHERE status = 'cancelled') AS cancelled,
            COALESCE(sum(total_amount) FILTER (WHERE status <> 'cancelled'), 0) AS revenue,
            COALESCE(sum(pending_amount) FILTER (WHERE status <> 'cancelled'), 0) AS pending_payments
        FROM reservations
    `)
	if err != nil {
		return nil, err
	}

	var rooms struct {
		Active   int `db:"active"`
		Occupied int `db:"occupied"`
	}
	err = r.DB.GetContext(ctx, &rooms, `
        SELECT
            count(*) AS active,
            count(*) FILTER (WHERE status = 'occupied') AS occupied
        FROM rooms WHERE is_active
    `)
	if err != nil {
		return nil, err
	}
	stats.ActiveRooms = rooms.Active
	stats.OccupiedRooms = rooms.Occupied
	return &stats, nil
}

func (r *PGRepository) Arrivals(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.DB.SelectContext(ctx, &reservations, `
        SELECT * FROM reservations
        WHERE check_in = $1 AND status IN ('prereserva', 'confirmada')
        ORDER BY guest_name
    `, day)
	return reservations, err
}

func (r *PGRepository) Departures(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.DB.SelectContext(ctx, &reservations, `
        SELECT * FROM reservations
        WHERE check_out = $1 AND status = 'en_curso'
        ORDER BY guest_name
    `, day)
	return reservations, err
}

func (r *PGRepository) Occupancy(ctx context.Context, from, to time.Time) ([]model.DailyOccupancy, error) {
	var days []model.DailyOccupancy
	err := r.DB.SelectContext(ctx, &days, `
        SELECT d::date AS day, count(res.id) AS reservations
        FROM generate_series($1::date, $2::date, interval '1 day') AS d
        LEFT JOIN reservations res
            ON res.check_in <= d::date AND res.check_out > d::date
           AND res.status NOT IN ('cancelled')
        GROUP BY d
        ORDER BY d
    `, from, to)
	return days, err
}
