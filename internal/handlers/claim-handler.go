package handlers

import (
	"claimbot/internal/middleware"
	"claimbot/internal/models"
	"claimbot/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for claim submissions
	claimSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_claim_submissions_total",
			Help: "Total number of expense claim submissions",
		},
		[]string{"status"},
	)

	// Counter for claim decisions
	claimDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claimbot_claim_decisions_total",
			Help: "Total number of approve/reject decisions on claims",
		},
		[]string{"decision"},
	)
)

type ClaimHandler struct {
	claimService *service.ClaimService
}

func NewClaimHandler(claimService *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

func (h *ClaimHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	claimGroup := app.Group("/protected/claims", auth)

	claimGroup.Post("/", h.CreateClaim, middleware.PermissionRequired(middleware.CreateClaimPermission))
	claimGroup.Get("/", h.ListClaims, middleware.PermissionRequired(middleware.ReadClaimPermission))
	claimGroup.Get("/approvals", h.ListApprovals, middleware.PermissionRequired(middleware.ApproveClaimPermission))
	claimGroup.Get("/:id", h.GetClaim, middleware.PermissionRequired(middleware.ReadClaimPermission))
	claimGroup.Put("/:id", h.UpdateClaim, middleware.PermissionRequired(middleware.UpdateClaimPermission))
	claimGroup.Delete("/:id", h.DeleteClaim, middleware.PermissionRequired(middleware.DeleteClaimPermission))

	claimGroup.Post("/:id/submit", h.SubmitClaim, middleware.PermissionRequired(middleware.CreateClaimPermission))
	claimGroup.Post("/:id/approve", h.ApproveClaim, middleware.PermissionRequired(middleware.ApproveClaimPermission))
	claimGroup.Post("/:id/reject", h.RejectClaim, middleware.PermissionRequired(middleware.ApproveClaimPermission))
	claimGroup.Post("/:id/pay", h.PayClaim, middleware.PermissionRequired(middleware.ProcessPaymentsPermission))
}

func (h *ClaimHandler) CreateClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var createRequest models.CreateClaimRequest
	if err := c.Bind().Body(&createRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	claim, err := h.claimService.Create(c.Context(), actor, &createRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Claim Created Successfully",
		"data": fiber.Map{
			"claim": claim,
		},
	})
}

func (h *ClaimHandler) ListClaims(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	claims, err := h.claimService.ListForActor(c.Context(), actor, models.Status(c.Query("status")))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"claims": claims,
			"count":  len(claims),
		},
	})
}

// ListApprovals is the manager queue: claims waiting for a decision.
func (h *ClaimHandler) ListApprovals(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	claims, err := h.claimService.ListForActor(c.Context(), actor, models.StatusSubmitted)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"claims": claims,
			"count":  len(claims),
		},
	})
}

func (h *ClaimHandler) GetClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	claim, err := h.claimService.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"claim": claim,
		},
	})
}

func (h *ClaimHandler) UpdateClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var updateRequest models.UpdateClaimRequest
	if err := c.Bind().Body(&updateRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	claim, err := h.claimService.Update(c.Context(), actor, c.Params("id"), &updateRequest)
	if err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Claim Updated Successfully",
		"data": fiber.Map{
			"claim": claim,
		},
	})
}

func (h *ClaimHandler) DeleteClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	if err := h.claimService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Claim Deleted Successfully",
	})
}

func (h *ClaimHandler) SubmitClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	claim, err := h.claimService.Submit(c.Context(), actor, c.Params("id"))
	if err != nil {
		claimSubmissions.WithLabelValues("failure").Inc()
		return failWith(c, err)
	}

	claimSubmissions.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Claim Submitted Successfully",
		"data": fiber.Map{
			"claim": claim,
		},
	})
}

func (h *ClaimHandler) ApproveClaim(c fiber.Ctx) error {
	return h.decide(c, true)
}

func (h *ClaimHandler) RejectClaim(c fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *ClaimHandler) decide(c fiber.Ctx, approve bool) error {
	actor := middleware.ActorFromCtx(c)

	var decisionRequest models.DecisionRequest
	if err := c.Bind().Body(&decisionRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	claim, err := h.claimService.Decide(c.Context(), actor, c.Params("id"), approve, decisionRequest.Remarks)
	if err != nil {
		return failWith(c, err)
	}

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	claimDecisions.WithLabelValues(decision).Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Decision Recorded Successfully",
		"data": fiber.Map{
			"claim": claim,
		},
	})
}

func (h *ClaimHandler) PayClaim(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	if err := h.claimService.MarkPaid(c.Context(), actor, c.Params("id")); err != nil {
		return failWith(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Claim Marked As Paid",
	})
}
