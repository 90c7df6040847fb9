package handlers

import (
	"time"

	"claimbot/internal/middleware"
	"claimbot/internal/models"
	"claimbot/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for overtime request submissions
	overtimeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_overtime_submissions_total",
			Help: "Total number of overtime request submissions",
		},
		[]string{"status"},
	)

	// Counter for overtime decisions
	overtimeDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_overtime_decisions_total",
			Help: "Total number of approve/reject decisions on overtime requests",
		},
		[]string{"decision"},
	)
)

type OvertimeHandler struct {
	overtimeService *service.OvertimeService
}

func NewOvertimeHandler(overtimeService *service.OvertimeService) *OvertimeHandler {
	return &OvertimeHandler{
		overtimeService: overtimeService,
	}
}

func (h *OvertimeHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	overtimeGroup := app.Group("/protected/overtime", auth)

	overtimeGroup.Post("/", h.CreateOvertime, middleware.PermissionRequired(middleware.CreateOvertimePermission))
	overtimeGroup.Get("/", h.ListOvertime, middleware.PermissionRequired(middleware.ReadOvertimePermission))
	overtimeGroup.Get("/ledger", h.GetLedger, middleware.PermissionRequired(middleware.ReadOvertimePermission))
	overtimeGroup.Get("/approvals", h.ListApprovals, middleware.PermissionRequired(middleware.ApproveOvertimePermission))
	overtimeGroup.Get("/:id", h.GetOvertime, middleware.PermissionRequired(middleware.ReadOvertimePermission))
	overtimeGroup.Put("/:id", h.UpdateOvertime, middleware.PermissionRequired(middleware.CreateOvertimePermission))
	overtimeGroup.Delete("/:id", h.DeleteOvertime, middleware.PermissionRequired(middleware.CreateOvertimePermission))

	overtimeGroup.Post("/:id/approve", h.ApproveOvertime, middleware.PermissionRequired(middleware.ApproveOvertimePermission))
	overtimeGroup.Post("/:id/reject", h.RejectOvertime, middleware.PermissionRequired(middleware.ApproveOvertimePermission))
	overtimeGroup.Post("/:id/pay", h.PayOvertime, middleware.PermissionRequired(middleware.ProcessPaymentsPermission))
}

func (h *OvertimeHandler) CreateOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var createRequest models.CreateOvertimeRequest
	if err := c.Bind().Body(&createRequest); err != nil {
		overtimeSubmissions.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.overtimeService.Create(c.Context(), actor, &createRequest)
	if err != nil {
		overtimeSubmissions.WithLabelValues("failure").Inc()
		return failWith(c, err)
	}

	overtimeSubmissions.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Overtime Request Created Successfully",
		"data": fiber.Map{
			"request": request,
		},
	})
}

func (h *OvertimeHandler) ListOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	requests, err := h.overtimeService.ListForActor(c.Context(), actor, models.Status(c.Query("status")))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"requests": requests,
			"count":    len(requests),
		},
	})
}

// GetLedger returns the actor's accumulated overtime hours for a month,
// defaulting to the current month.
func (h *OvertimeHandler) GetLedger(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	ledger, err := h.overtimeService.Ledger(c.Context(), actor, month)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"ledger": ledger,
		},
	})
}

// ListApprovals is the manager queue: overtime requests waiting for a
// decision.
func (h *OvertimeHandler) ListApprovals(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	requests, err := h.overtimeService.ListForActor(c.Context(), actor, models.StatusSubmitted)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"requests": requests,
			"count":    len(requests),
		},
	})
}

func (h *OvertimeHandler) GetOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	request, err := h.overtimeService.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"request": request,
		},
	})
}

func (h *OvertimeHandler) UpdateOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var updateRequest models.UpdateOvertimeRequest
	if err := c.Bind().Body(&updateRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.overtimeService.Update(c.Context(), actor, c.Params("id"), &updateRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Overtime Request Updated Successfully",
		"data": fiber.Map{
			"request": request,
		},
	})
}

func (h *OvertimeHandler) DeleteOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	if err := h.overtimeService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Overtime Request Deleted Successfully",
	})
}

func (h *OvertimeHandler) ApproveOvertime(c fiber.Ctx) error {
	return h.decide(c, true)
}

func (h *OvertimeHandler) RejectOvertime(c fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *OvertimeHandler) decide(c fiber.Ctx, approve bool) error {
	actor := middleware.ActorFromCtx(c)

	var decisionRequest models.DecisionRequest
	if err := c.Bind().Body(&decisionRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.overtimeService.Decide(c.Context(), actor, c.Params("id"), approve, decisionRequest.Remarks)
	if err != nil {
		return failWith(c, err)
	}

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	overtimeDecisions.WithLabelValues(decision).Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Decision Recorded Successfully",
		"data": fiber.Map{
			"request": request,
		},
	})
}

func (h *OvertimeHandler) PayOvertime(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	if err := h.overtimeService.MarkPaid(c.Context(), actor, c.Params("id")); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Overtime Request Marked As Paid",
	})
}
