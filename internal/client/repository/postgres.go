package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/client/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Client) error {
	query := `
        INSERT INTO clients (
            id, type, name, last_name, rut, email, phone, address, city, country,
            is_frequent, ranking, status, notes, total_spent, visit_count, created_at, updated_at
        )
        VALUES (
            :id, :type, :name, :last_name, :rut, :email, :phone, :address, :city, :country,
            :is_frequent, :ranking, :status, :notes, :total_spent, :visit_count, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Client, error) {
	var c model.Client
	err := r.DB.GetContext(ctx, &c, "SELECT * FROM clients WHERE "+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *PGRepository) FindByRUT(ctx context.Context, rut string) (*model.Client, error) {
	return r.findOne(ctx, "rut = $1", rut)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.Client, error) {
	return r.findOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ClientFilters) ([]model.Client, int, error) {
	var clients []model.Client
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR last_name ILIKE :search OR rut ILIKE :search OR email ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.IsFrequent != nil {
		conditions = append(conditions, "is_frequent = :is_frequent")
		args["is_frequent"] = *f.IsFrequent
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM clients"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM clients" + whereClause + " ORDER BY name, last_name"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &clients, args)
	return clients, count, err
}

func (r *PGRepository) Search(ctx context.Context, query string, limit int) ([]model.Client, error) {
	var clients []model.Client
	err := r.DB.SelectContext(ctx, &clients, `
        SELECT * FROM clients
        WHERE name ILIKE $1 OR last_name ILIKE $1 OR rut ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1
        ORDER BY is_frequent DESC, name
        LIMIT $2
    `, "%"+query+"%", limit)
	return clients, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Client) error {
	query := `
        UPDATE clients SET
            type = :type,
            name = :name,
            last_name = :last_name,
            rut = :rut,
            email = :email,
            phone = :phone,
            address = :address,
            city = :city,
            country = :country,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE clients SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *PGRepository) SetFrequent(ctx context.Context, id string, frequent bool) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE clients SET is_frequent = $1, updated_at = NOW() WHERE id = $2`, frequent, id)
	return err
}

func (r *PGRepository) SetRanking(ctx context.Context, id string, ranking int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE clients SET ranking = $1, updated_at = NOW() WHERE id = $2`, ranking, id)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

func (r *PGRepository) CountReservations(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM reservations WHERE client_id = $1`, clientID)
	return n, err
}
