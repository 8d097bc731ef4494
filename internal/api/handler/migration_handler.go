package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardkit/member-system/internal/api/metrics"
	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// MigrationHandler exposes the operator-facing migration surface. Unlike
// the login endpoint, failures here carry their specific reason: the
// caller is a trusted operator, not an anonymous form submitter.
type MigrationHandler struct {
	migrations ports.MigrationService
}

func NewMigrationHandler(migrations ports.MigrationService) *MigrationHandler {
	return &MigrationHandler{migrations: migrations}
}

// Migrate converts a single legacy member into a current member.
//
// @Summary      Migrate one legacy member
// @Tags         migrations
// @Accept       json
// @Produce      json
// @Param        body  body      migrateRequest  true  "Legacy identifier and optional new password"
// @Success      201   {object}  memberResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/migrations [post]
func (h *MigrationHandler) Migrate(c echo.Context) error {
	var req migrateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	member, err := h.migrations.MigrateOne(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		switch err {
		case domain.ErrNotDualMode:
			metrics.MigrationsTotal.WithLabelValues("not_dual_mode").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "NotDualMode"})
		case domain.ErrLegacyNotFound:
			metrics.MigrationsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "NotFound"})
		case domain.ErrAlreadyMigrated:
			metrics.MigrationsTotal.WithLabelValues("already_migrated").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "AlreadyMigrated"})
		}
		metrics.MigrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.MigrationsTotal.WithLabelValues("migrated").Inc()
	return c.JSON(http.StatusCreated, toMemberResponse(member))
}

// MigrateBatch migrates a list of identifiers, returning a full per-item
// accounting. The response is 200 even on partial failure: the batch call
// itself did not error.
//
// @Summary      Migrate a batch of legacy members
// @Tags         migrations
// @Accept       json
// @Produce      json
// @Param        body  body      migrateBatchRequest  true  "Legacy identifiers"
// @Success      200   {object}  migrateBatchResponse
// @Failure      400   {object}  errorResponse
// @Router       /admin/migrations/batch [post]
func (h *MigrationHandler) MigrateBatch(c echo.Context) error {
	var req migrateBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	metrics.MigrationBatchSize.Observe(float64(len(req.Identifiers)))

	result, err := h.migrations.MigrateMany(c.Request().Context(), req.Identifiers)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, migrateBatchResponse{
		Succeeded:    result.Succeeded,
		Failed:       result.Failed,
		SuccessCount: len(result.Succeeded),
		FailureCount: len(result.Failed),
	})
}

// Migratable previews the legacy members still awaiting migration.
//
// @Summary      List migratable legacy members
// @Tags         migrations
// @Produce      json
// @Success      200  {object}  migratableResponse
// @Failure      400  {object}  errorResponse
// @Router       /admin/migrations/pending [get]
func (h *MigrationHandler) Migratable(c echo.Context) error {
	pending, err := h.migrations.ListMigratable(c.Request().Context())
	if err != nil {
		if err == domain.ErrNotDualMode {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "NotDualMode"})
		}
		return err
	}

	members := make([]legacyMemberResponse, 0, len(pending))
	for _, lm := range pending {
		members = append(members, toLegacyMemberResponse(lm))
	}

	return c.JSON(http.StatusOK, migratableResponse{Members: members, Count: len(members)})
}
