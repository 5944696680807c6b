package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/room/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
        INSERT INTO rooms (
            id, number, type, capacity, floor, amenities, price_per_night,
            status, is_active, created_at, updated_at
        )
        VALUES (
            :id, :number, :type, :capacity, :floor, :amenities, :price_per_night,
            :status, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, room)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.DB.GetContext(ctx, &room, `SELECT * FROM rooms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *PGRepository) FindByNumber(ctx context.Context, number string) (*model.Room, error) {
	var room model.Room
	err := r.DB.GetContext(ctx, &room, `SELECT * FROM rooms WHERE number = $1`, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RoomFilters) ([]model.Room, int, error) {
	var rooms []model.Room
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(number ILIKE :search OR type ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.Floor > 0 {
		conditions = append(conditions, "floor = :floor")
		args["floor"] = f.Floor
	}
	if f.MinCapacity > 0 {
		conditions = append(conditions, "capacity >= :min_capacity")
		args["min_capacity"] = f.MinCapacity
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM rooms" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM rooms" + whereClause + " ORDER BY floor, number"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &rooms, args)
	return rooms, count, err
}

func (r *PGRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
        UPDATE rooms SET
            number = :number,
            type = :type,
            capacity = :capacity,
            floor = :floor,
            amenities = :amenities,
            price_per_night = :price_per_night,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, room)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE rooms SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

func (r *PGRepository) CountOpenReservations(ctx context.Context, roomID string) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `
        SELECT count(*) FROM reservations
        WHERE room_id = $1 AND status NOT IN ('finalizada', 'cancelled')
    `, roomID)
	return n, err
}
