package schedule

import (
	"schedule-reconciler/core/logger"
	"schedule-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReconcileRequest is the body of the reconcile and apply endpoints.
// Either Object (a schedule object in the bucket) or Data (an inline
// imported schedule) must be set; Object wins when both are present.
type ReconcileRequest struct {
	Object string                  `json:"object"`
	Data   *reconcile.ImportedData `json:"data"`

	// Export is the object name for the processed schedule (apply only).
	// Defaults to "<object>.processed.json".
	Export string `json:"export"`
}

// Handler handles HTTP requests for the schedule feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the schedule routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/schedule")
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/apply", h.HandleApply)
	group.Get("/validate", h.HandleValidate)
}

// HandleReconcile runs a reconciliation pass and returns the full result:
// suggested changes, conflicts, validation errors, auto-corrections and the
// processed schedule. Nothing is committed.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.reconcileFromRequest(c)
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(result)
}

// HandleApply runs a reconciliation pass and commits the result: new
// professionals are created in the registry and the processed schedule is
// uploaded. Conflicts block the commit.
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.reconcileParsed(c, req)
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return errorResponse(c, err)
	}

	if result.Summary.Conflicts > 0 {
		l.Warn("Apply blocked by conflicts", zap.Int("conflicts", result.Summary.Conflicts))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "schedule has unresolved conflicts",
			"conflicts": result.Conflicts,
		})
	}

	export := req.Export
	if export == "" {
		export = req.Object + ".processed.json"
	}

	if err := h.service.Apply(c.Context(), result, export); err != nil {
		l.Error("Apply failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"summary": result.Summary,
		"export":  export,
	})
}

// HandleValidate checks that the registry tables have the expected shape.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	if err := h.service.Validate(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "invalid",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// errorResponse maps an error to a JSON error body, honoring fiber.Error codes.
func errorResponse(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (h *Handler) reconcileFromRequest(c *fiber.Ctx) (*reconcile.Result, error) {
	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	return h.reconcileParsed(c, req)
}

func (h *Handler) reconcileParsed(c *fiber.Ctx, req ReconcileRequest) (*reconcile.Result, error) {
	if req.Object != "" {
		return h.service.ReconcileObject(c.Context(), req.Object)
	}
	if req.Data != nil {
		return h.service.ReconcileData(c.Context(), *req.Data)
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "either object or data must be provided")
}
