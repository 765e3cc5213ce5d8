package integrity

import (
	"elternaccounts/core/logger"
	"elternaccounts/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.LedgerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/inputs", h.HandleInputsCheck)
	group.Get("/ledger", h.HandleLedgerCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Inputs, Ledger).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if inputs, err := h.service.CheckInputs(ctx); err != nil {
		report["inputs"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["inputs"] = inputs
	}

	if !h.service.HasLedger() {
		report["ledger"] = map[string]interface{}{"status": "disabled"}
	} else if ledgerReport, err := h.service.CheckLedger(); err != nil {
		report["ledger"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["ledger"] = ledgerReport
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks that the bucket and the input and output folders exist. Optionally creates missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleInputsCheck checks the input objects.
// @Summary Check Inputs
// @Description Verify that the submission sheet and the registry export exist and carry the required columns.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {array} checks.InputReport "Input Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/inputs [get]
func (h *Handler) HandleInputsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.CheckInputs(c.Context())
	if err != nil {
		l.Error("Inputs check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(reports)
}

// HandleLedgerCheck checks the ledger schema.
// @Summary Check Ledger Schema
// @Description Validates that the run ledger tables carry all expected columns.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.LedgerReport "Ledger Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Ledger Disabled"
// @Router /integrity/ledger [get]
func (h *Handler) HandleLedgerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.HasLedger() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "run ledger is not configured"})
	}

	report, err := h.service.CheckLedger()
	if err != nil {
		l.Error("Ledger check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
