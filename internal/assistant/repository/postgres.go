package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.TokenUsage) error {
	query := `
        INSERT INTO ai_token_usage (
            id, user_id, session_id, feature_type, model, prompt_tokens, completion_tokens,
            total_tokens, estimated_cost_usd, request_type, success, error_message, created_at
        )
        VALUES (
            :id, :user_id, :session_id, :feature_type, :model, :prompt_tokens, :completion_tokens,
            :total_tokens, :estimated_cost_usd, :request_type, :success, :error_message, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func where(f *dto.UsageFilters) (string, map[string]interface{}) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.Until != nil {
		conditions = append(conditions, "created_at < :until")
		args["until"] = *f.Until
	}
	if f.FeatureType != "" {
		conditions = append(conditions, "feature_type = :feature_type")
		args["feature_type"] = f.FeatureType
	}
	if f.Model != "" {
		conditions = append(conditions, "model = :model")
		args["model"] = f.Model
	}
	if f.Success != nil {
		conditions = append(conditions, "success = :success")
		args["success"] = *f.Success
	}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.UsageFilters) ([]model.TokenUsage, int, error) {
	var items []model.TokenUsage
	var count int

	whereClause, args := where(f)

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM ai_token_usage"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM ai_token_usage" + whereClause + " ORDER BY created_at DESC"
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

type totalsRow struct {
	Requests         int             `db:"requests"`
	Successful       int             `db:"successful"`
	TotalTokens      int             `db:"total_tokens"`
	PromptTokens     int             `db:"prompt_tokens"`
	CompletionTokens int             `db:"completion_tokens"`
	Cost             decimal.Decimal `db:"cost"`
}

type countRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (r *PGRepository) Stats(ctx context.Context, f *dto.UsageFilters) (*model.TokenUsageStats, error) {
	whereClause, args := where(f)

	var t totalsRow
	if err := r.namedGet(ctx, &t, `
        SELECT count(*) AS requests,
               count(*) FILTER (WHERE success) AS successful,
               COALESCE(sum(total_tokens), 0) AS total_tokens,
               COALESCE(sum(prompt_tokens), 0) AS prompt_tokens,
               COALESCE(sum(completion_tokens), 0) AS completion_tokens,
               COALESCE(sum(estimated_cost_usd), 0) AS cost
        FROM ai_token_usage`+whereClause, args); err != nil {
		return nil, err
	}

	stats := &model.TokenUsageStats{
		TotalRequests:    t.Requests,
		SuccessfulCount:  t.Successful,
		FailedCount:      t.Requests - t.Successful,
		TotalTokens:      t.TotalTokens,
		PromptTokens:     t.PromptTokens,
		CompletionTokens: t.CompletionTokens,
		TotalCostUSD:     t.Cost,
	}

	var err error
	if stats.ByModel, err = r.countBy(ctx, "model", whereClause, args); err != nil {
		return nil, err
	}
	if stats.ByFeature, err = r.countBy(ctx, "feature_type", whereClause, args); err != nil {
		return nil, err
	}
	return stats, nil
}

// countBy counts rows per value of column, which must be a trusted name.
func (r *PGRepository) countBy(ctx context.Context, column, whereClause string, args map[string]interface{}) (map[string]int, error) {
	nstmt, err := r.DB.PrepareNamedContext(ctx, fmt.Sprintf(
		"SELECT %s AS key, count(*) AS count FROM ai_token_usage%s GROUP BY %s", column, whereClause, column))
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var rows []countRow
	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *PGRepository) namedGet(ctx context.Context, dest interface{}, query string, args map[string]interface{}) error {
	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer nstmt.Close()
	return nstmt.GetContext(ctx, dest, args)
}
