// Package merchant persists the canonical merchant reference list.
package merchant

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/normalizers"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

const merchantColumns = "id, name, normalized_name, display_name, domain, is_active, position, created_at, updated_at, deleted_at"

// Repository handles merchant persistence
type Repository struct {
	db     *sqlx.DB
	logger ectologger.Logger
}

// NewRepository creates a new merchant repository
func NewRepository(db *sqlx.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create adds a merchant to the reference list. The normalized name must be
// non-empty after cleaning and unique among active merchants.
func (r *Repository) Create(ctx context.Context, req models.CreateMerchantRequest) (*models.Merchant, error) {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.Create")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method": "Create",
		"name":   req.Name,
	})

	normalized := normalizers.Clean(req.Name)
	if normalized == "" {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "merchant name normalizes to empty")
	}

	if existing, err := r.getByNormalizedName(ctx, normalized); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, httperror.NewHTTPError(http.StatusConflict, fmt.Sprintf("merchant with normalized name %q already exists", normalized))
	}

	now := time.Now().UTC()
	merchant := &models.Merchant{
		ID:             uuid.New().String(),
		Name:           req.Name,
		NormalizedName: normalized,
		DisplayName:    req.DisplayName,
		Domain:         req.Domain,
		IsActive:       req.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("merchants")
	sb.Cols("id", "name", "normalized_name", "display_name", "domain", "is_active", "created_at", "updated_at")
	sb.Values(merchant.ID, merchant.Name, merchant.NormalizedName, merchant.DisplayName, merchant.Domain, merchant.IsActive, merchant.CreatedAt, merchant.UpdatedAt)
	sb.SQL("RETURNING position")

	query, args := sb.Build()
	if err := r.db.GetContext(ctx, &merchant.Position, query, args...); err != nil {
		log.WithError(err).Error("Failed to create merchant")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create merchant")
	}

	log.WithFields(map[string]any{"id": merchant.ID}).Info("Created merchant")
	return merchant, nil
}

// Get retrieves a merchant by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Merchant, error) {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(merchantColumns)
	sb.From("merchants")
	sb.Where(
		sb.Equal("id", id),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var merchant models.Merchant
	if err := r.db.GetContext(ctx, &merchant, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("merchant %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get merchant")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get merchant")
	}

	return &merchant, nil
}

// ListActive retrieves all active merchants in reference-list order. The
// position ordering is what makes tie-breaks between equal match scores
// deterministic.
func (r *Repository) ListActive(ctx context.Context) ([]models.Merchant, error) {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.ListActive")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(merchantColumns)
	sb.From("merchants")
	sb.Where(
		sb.Equal("is_active", true),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("position ASC")

	query, args := sb.Build()
	var merchants []models.Merchant
	if err := r.db.SelectContext(ctx, &merchants, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list active merchants")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list active merchants")
	}

	return merchants, nil
}

// List retrieves a page of merchants
func (r *Repository) List(ctx context.Context, page, pageSize int) ([]models.Merchant, int, error) {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("merchants")
	countSb.Where(countSb.IsNull("deleted_at"))

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count merchants")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count merchants")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(merchantColumns)
	sb.From("merchants")
	sb.Where(sb.IsNull("deleted_at"))
	sb.OrderBy("position ASC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var merchants []models.Merchant
	if err := r.db.SelectContext(ctx, &merchants, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list merchants")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list merchants")
	}

	return merchants, totalCount, nil
}

// Update updates a merchant's display name, domain, or active flag. The name
// itself is immutable; replacing a merchant means deleting and re-creating it.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateMerchantRequest) (*models.Merchant, error) {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.Update")
	defer span.End()

	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		existing.DisplayName = req.DisplayName
	}
	if req.Domain != nil {
		existing.Domain = req.Domain
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("merchants")
	sb.Set(
		sb.Assign("display_name", existing.DisplayName),
		sb.Assign("domain", existing.Domain),
		sb.Assign("is_active", existing.IsActive),
		sb.Assign("updated_at", existing.UpdatedAt),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update merchant")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update merchant")
	}

	return existing, nil
}

// Delete soft deletes a merchant
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "merchant.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("merchants")
	sb.Set(sb.Assign("deleted_at", now))
	sb.Where(
		sb.Equal("id", id),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete merchant")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete merchant")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("merchant %s not found", id))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted merchant")
	return nil
}

func (r *Repository) getByNormalizedName(ctx context.Context, normalized string) (*models.Merchant, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(merchantColumns)
	sb.From("merchants")
	sb.Where(
		sb.Equal("normalized_name", normalized),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var merchant models.Merchant
	if err := r.db.GetContext(ctx, &merchant, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to look up merchant by normalized name")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to look up merchant")
	}
	return &merchant, nil
}
