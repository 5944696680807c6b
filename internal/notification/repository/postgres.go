package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, e *model.SentEmail) error {
	query := `
        INSERT INTO sent_emails (id, template_id, recipient, subject, status, error, ref_type, ref_id, created_at)
        VALUES (:id, :template_id, :recipient, :subject, :status, :error, :ref_type, :ref_id, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SentEmailFilters) ([]model.SentEmail, int, error) {
	var items []model.SentEmail
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.TemplateID != "" {
		conditions = append(conditions, "template_id = :template_id")
		args["template_id"] = f.TemplateID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Recipient != "" {
		conditions = append(conditions, "recipient ILIKE :recipient")
		args["recipient"] = "%" + f.Recipient + "%"
	}
	if f.RefType != "" {
		conditions = append(conditions, "ref_type = :ref_type")
		args["ref_type"] = f.RefType
	}
	if f.RefID != "" {
		conditions = append(conditions, "ref_id = :ref_id")
		args["ref_id"] = f.RefID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM sent_emails"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM sent_emails" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
