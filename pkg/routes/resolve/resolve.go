// Package resolve exposes the resolution API: match one query or a batch of
// queries against the reference list.
package resolve

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Lakshmi0706/Mogrds/pkg/appcontext"
	"github.com/Lakshmi0706/Mogrds/pkg/events"
	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/processor"
)

// Register registers resolution routes
func Register(g *echo.Group) {
	g.POST("", ResolveQuery)
	g.POST("/batch", ResolveBatch)
}

// ResolveQueryRequest is the request body for resolving a single query
type ResolveQueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// ResolveQuery resolves one noisy merchant description
func ResolveQuery(c echo.Context) error {
	ctx := c.Request().Context()
	if rid := c.Request().Header.Get("X-Request-Id"); rid != "" {
		ctx = appcontext.SetRequestID(ctx, rid)
	}

	var req ResolveQueryRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	ctx, proc, err := ectoinject.GetContext[*processor.Processor](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	record, err := proc.ProcessQuery(ctx, req.Query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// ResolveBatchRequest is the request body for resolving a batch of queries
type ResolveBatchRequest struct {
	BatchID string   `json:"batch_id,omitempty"`
	Queries []string `json:"queries" validate:"required,min=1"`
}

// ResolveBatchResponse carries per-query records plus the batch summary
type ResolveBatchResponse struct {
	BatchID string                `json:"batch_id,omitempty"`
	Records []models.ResultRecord `json:"records"`
	Summary events.BatchSummary   `json:"summary"`
}

// ResolveBatch resolves a batch of descriptions in order
func ResolveBatch(c echo.Context) error {
	ctx := c.Request().Context()
	if rid := c.Request().Header.Get("X-Request-Id"); rid != "" {
		ctx = appcontext.SetRequestID(ctx, rid)
	}

	var req ResolveBatchRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Queries) == 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "at least one query is required")
	}

	ctx, proc, err := ectoinject.GetContext[*processor.Processor](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	records := make([]models.ResultRecord, 0, len(req.Queries))
	summary, err := proc.ProcessBatch(ctx, req.BatchID, req.Queries, func(_ context.Context, record models.ResultRecord) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ResolveBatchResponse{
		BatchID: req.BatchID,
		Records: records,
		Summary: summary,
	})
}
