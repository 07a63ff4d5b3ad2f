package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/entity"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	pool *pgxpool.Pool
}

// NewBranchRepository construye el adaptador de sucursales.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepo {
	return &BranchRepo{pool: pool}
}

const branchColumns = `id, name, district, latitude, longitude, status, opened_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Name, &b.District, &b.Latitude, &b.Longitude, &b.Status, &b.OpenedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListActive sucursales activas ordenadas por nombre.
func (r *BranchRepo) ListActive(ctx context.Context) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE status = 'Active' ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListDistricts distritos con al menos una sucursal, en orden alfabético.
func (r *BranchRepo) ListDistricts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT district FROM branches ORDER BY district`)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	districts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan district: %w", err)
	}
	return districts, nil
}

// GetByID obtiene una sucursal; domain.ErrNotFound si no existe.
func (r *BranchRepo) GetByID(ctx context.Context, id int64) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	b, err := scanBranch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sucursal %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}
