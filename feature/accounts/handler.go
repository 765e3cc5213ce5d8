package accounts

import (
	"errors"
	"mime/multipart"
	"strconv"

	"elternaccounts/core/logger"
	"elternaccounts/core/tabular"
	"elternaccounts/core/username"
	"elternaccounts/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultRunsLimit = 20

// Handler handles HTTP requests for parent accounts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the accounts routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/accounts")
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/run", h.HandleRun)
	group.Get("/username", h.HandleUsername)
	group.Get("/runs", h.HandleListRuns)
}

// HandleReconcile matches uploaded files and returns the result without storing it.
// @Summary Reconcile Uploaded Files
// @Description Match a forms export against a registry export and return audit and account rows.
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param forms formData file true "Forms export (comma separated)"
// @Param registry formData file true "Registry export (semicolon separated)"
// @Success 200 {object} reconcile.Result "Reconciliation Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	forms, err := openUpload(c, "forms")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer forms.Close()

	registry, err := openUpload(c, "registry")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer registry.Close()

	result, err := h.service.Reconcile(c.Context(), forms, registry)
	if errors.Is(err, tabular.ErrMissingInputField) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Reconciled uploaded files",
		zap.Int("accepted", result.Summary.Accepted),
		zap.Int("ambiguous", result.Summary.Ambiguous),
	)
	return c.JSON(result)
}

// HandleRun performs a full reconciliation against the bucket.
// @Summary Run Reconciliation
// @Description Merge the forms export into the master sheet, reconcile it against the registry and upload both outputs.
// @Tags accounts
// @Produce json
// @Success 200 {object} RunReport "Run Report"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context(), SourceHTTP)
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reconciliation run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleUsername derives a username for a parent name.
// @Summary Derive Username
// @Description Derive a username from a given name and a family name.
// @Tags accounts
// @Produce json
// @Param given query string true "Given name"
// @Param family query string true "Family name"
// @Param style query string false "dotted (default) or short"
// @Success 200 {object} map[string]string "Username"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /accounts/username [get]
func (h *Handler) HandleUsername(c *fiber.Ctx) error {
	given := c.Query("given")
	family := c.Query("family")
	if given == "" || family == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "given and family are required"})
	}

	style := username.StyleDotted
	if raw := c.Query("style"); raw != "" {
		parsed, err := username.ParseStyle(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		style = parsed
	}

	return c.JSON(fiber.Map{
		"username": h.service.Username(given, family, style),
		"style":    string(style),
	})
}

// HandleListRuns lists recent runs from the ledger.
// @Summary List Runs
// @Description List recent reconciliation runs, newest first.
// @Tags accounts
// @Produce json
// @Param limit query int false "Maximum number of runs (default 20)"
// @Success 200 {array} ledger.Run "Runs"
// @Failure 503 {object} map[string]string "Ledger Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := utils.ToIntDefault(c.Query("limit"), defaultRunsLimit)
	runs, err := h.service.Runs(c.Context(), limit)
	if errors.Is(err, ErrLedgerDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

func openUpload(c *fiber.Ctx, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing file field "+strconv.Quote(field))
	}
	return fh.Open()
}
