package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// List returns one page of offers matching the filter, newest first, with
// ties broken by insertion order.
func (s *OfferStore) List(ctx context.Context, f model.OfferFilter) (model.OfferPage, error) {
	f.Normalize()

	where, args := filterClause(f)

	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_offers`+where, args...).Scan(&total)
	if err != nil {
		return model.OfferPage{}, fmt.Errorf("count offers: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, title, company, description, location, min_salary, max_salary,
		        source_api, external_id, created_at, updated_at
		 FROM job_offers%s
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return model.OfferPage{}, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	items := make([]model.JobOffer, 0, f.PageSize)
	for rows.Next() {
		var o model.JobOffer
		if err := rows.Scan(
			&o.ID, &o.Title, &o.Company, &o.Description, &o.Location,
			&o.MinSalary, &o.MaxSalary, &o.SourceAPI, &o.ExternalID,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return model.OfferPage{}, fmt.Errorf("scan offer: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return model.OfferPage{}, fmt.Errorf("list offers: %w", err)
	}

	return model.OfferPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		TotalPages: totalPages(total, f.PageSize),
	}, nil
}

// filterClause composes the WHERE clause for the filter's active predicates,
// AND-combined, with positional arguments numbered from $1. An empty filter
// yields an empty clause.
func filterClause(f model.OfferFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		conds = append(conds, fmt.Sprintf("min_salary >= $%d", len(args)))
	}
	if f.MaxSalary != nil {
		args = append(args, *f.MaxSalary)
		conds = append(conds, fmt.Sprintf("max_salary <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// totalPages is ceil(total / pageSize); zero when there are no results.
func totalPages(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
