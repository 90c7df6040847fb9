package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/calc"
	"claimbot/internal/events"
	"claimbot/internal/models"
	"claimbot/internal/rates"
	"claimbot/internal/rbac"
	"claimbot/internal/repository"
	"claimbot/internal/workflow"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ClaimService struct {
	ClaimRepo      *repository.ClaimRepository
	mileage        *calc.MileageCalculator
	rateService    *RateService
	eventPublisher events.Publisher
}

func NewClaimService(eventPublisher events.Publisher, mileage *calc.MileageCalculator, rateService *RateService) *ClaimService {
	return &ClaimService{
		ClaimRepo:      repository.Repositories_instance.ClaimRepository,
		mileage:        mileage,
		rateService:    rateService,
		eventPublisher: eventPublisher,
	}
}

// computeFinancials recomputes trip distance, the mileage amount and the
// claim total from the current trip and expense fields. Every path that
// touches those fields goes through here; a write that skips the recompute
// would persist a total the inputs no longer justify.
func (cs *ClaimService) computeFinancials(ctx context.Context, claim *models.Claim) error {
	km, err := cs.mileage.TripKM(ctx, claim.TripMode, claim.Origin, claim.Destination)
	if err != nil {
		return err
	}
	claim.TripKM = km

	rateTable, err := cs.rateService.Table(ctx)
	if err != nil {
		return err
	}
	perKM, err := rates.MileagePerKM(rateTable, time.Now().Format("2006-01-02"))
	if err != nil {
		return err
	}

	claim.Expenses.Mileage = math.Round(km*perKM*100) / 100
	claim.Total = claim.Expenses.Total()
	return nil
}

func (cs *ClaimService) Create(ctx context.Context, actor workflow.Actor, req *models.CreateClaimRequest) (*models.Claim, error) {
	status, err := workflow.InitialStatus(workflow.KindClaim, actor)
	if err != nil {
		return nil, err
	}

	ownerID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}

	claim := &models.Claim{
		UserID:      ownerID,
		Status:      status,
		TripMode:    req.TripMode,
		Origin:      req.Origin,
		Destination: req.Destination,
		Expenses: models.ExpenseBreakdown{
			Toll:   req.Toll,
			Petrol: req.Petrol,
			Meal:   req.Meal,
			Others: req.Others,
		},
		Description: req.Description,
	}

	if err := cs.computeFinancials(ctx, claim); err != nil {
		return nil, err
	}

	created, err := cs.ClaimRepo.Create(ctx, claim)
	if err != nil {
		return nil, err
	}

	cs.publishAudit(ctx, events.ClaimCreated, actor.ID, "create", created.ID.Hex(),
		fmt.Sprintf("%s trip %v to %v, total %.2f", claim.TripMode, claim.Origin, claim.Destination, claim.Total))
	return created, nil
}

func (cs *ClaimService) Get(ctx context.Context, actor workflow.Actor, id string) (*models.Claim, error) {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim.UserID.Hex() != actor.ID && !rbac.HasPermission(actor.Roles, "claims:read:all") {
		return nil, fmt.Errorf("%w: you may only view your own claims", apperr.ErrForbidden)
	}
	return claim, nil
}

func (cs *ClaimService) ListForActor(ctx context.Context, actor workflow.Actor, status models.Status) ([]*models.Claim, error) {
	if rbac.HasPermission(actor.Roles, "claims:read:all") {
		if status != "" {
			return cs.ClaimRepo.FindByStatus(ctx, status)
		}
		return cs.ClaimRepo.FindByStatus(ctx, models.StatusSubmitted)
	}

	ownerID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}
	return cs.ClaimRepo.FindByUser(ctx, ownerID)
}

// Submit moves a draft claim into the approval queue. The claim is
// re-read here and the repository pins the status again in its filter, so
// neither a stale handler copy nor a concurrent transition can commit.
func (cs *ClaimService) Submit(ctx context.Context, actor workflow.Actor, id string) (*models.Claim, error) {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Transition(workflow.KindClaim, claim.Status, workflow.ActionSubmit, actor, claim.UserID.Hex())
	if err != nil {
		return nil, err
	}

	if err := cs.ClaimRepo.TransitionStatus(ctx, claim.ID, claim.Status, next, nil); err != nil {
		return nil, err
	}
	claim.Status = next

	cs.publishAudit(ctx, events.ClaimSubmitted, actor.ID, string(workflow.ActionSubmit), claim.ID.Hex(),
		fmt.Sprintf("claim for %.2f submitted", claim.Total))
	return claim, nil
}

func (cs *ClaimService) Decide(ctx context.Context, actor workflow.Actor, id string, approve bool, remarks string) (*models.Claim, error) {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	action := workflow.ActionApprove
	eventType := events.ClaimApproved
	if !approve {
		action = workflow.ActionReject
		eventType = events.ClaimRejected
	}

	next, err := workflow.Transition(workflow.KindClaim, claim.Status, action, actor, claim.UserID.Hex())
	if err != nil {
		return nil, err
	}

	approver, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}

	now := int(time.Now().Unix())
	set := bson.M{
		"approvedBy": approver,
		"approvedAt": now,
		"remarks":    remarks,
	}
	if err := cs.ClaimRepo.TransitionStatus(ctx, claim.ID, claim.Status, next, set); err != nil {
		return nil, err
	}
	claim.Status = next
	claim.ApprovedBy = approver
	claim.ApprovedAt = now
	claim.Remarks = remarks

	cs.publishAudit(ctx, eventType, actor.ID, string(action), claim.ID.Hex(),
		fmt.Sprintf("claim %s by %s", next, actor.ID))
	return claim, nil
}

func (cs *ClaimService) Update(ctx context.Context, actor workflow.Actor, id string, req *models.UpdateClaimRequest) (*models.Claim, error) {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := workflow.Transition(workflow.KindClaim, claim.Status, workflow.ActionUpdate, actor, claim.UserID.Hex()); err != nil {
		return nil, err
	}

	if req.TripMode != nil {
		claim.TripMode = *req.TripMode
	}
	if req.Origin != nil {
		claim.Origin = req.Origin
	}
	if req.Destination != nil {
		claim.Destination = req.Destination
	}
	if req.Toll != nil {
		claim.Expenses.Toll = *req.Toll
	}
	if req.Petrol != nil {
		claim.Expenses.Petrol = *req.Petrol
	}
	if req.Meal != nil {
		claim.Expenses.Meal = *req.Meal
	}
	if req.Others != nil {
		claim.Expenses.Others = *req.Others
	}
	if req.Description != nil {
		claim.Description = *req.Description
	}

	if err := cs.computeFinancials(ctx, claim); err != nil {
		return nil, err
	}

	if err := cs.ClaimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (cs *ClaimService) Delete(ctx context.Context, actor workflow.Actor, id string) error {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return err
	}

	if _, err := workflow.Transition(workflow.KindClaim, claim.Status, workflow.ActionDelete, actor, claim.UserID.Hex()); err != nil {
		return err
	}

	if err := cs.ClaimRepo.Delete(ctx, claim.ID); err != nil {
		return err
	}

	cs.publishAudit(ctx, events.ClaimDeleted, actor.ID, string(workflow.ActionDelete), claim.ID.Hex(),
		fmt.Sprintf("claim in status %s deleted", claim.Status))
	return nil
}

// MarkPaid is invoked by the payroll consumer once the payment run
// completes.
func (cs *ClaimService) MarkPaid(ctx context.Context, actor workflow.Actor, id string) error {
	claim, err := cs.findByHex(ctx, id)
	if err != nil {
		return err
	}

	next, err := workflow.Transition(workflow.KindClaim, claim.Status, workflow.ActionMarkPaid, actor, claim.UserID.Hex())
	if err != nil {
		return err
	}

	if err := cs.ClaimRepo.TransitionStatus(ctx, claim.ID, claim.Status, next, nil); err != nil {
		return err
	}

	cs.publishAudit(ctx, events.DocumentPaid, actor.ID, string(workflow.ActionMarkPaid), claim.ID.Hex(), "claim paid out")
	return nil
}

// SettlePaid handles a payroll paid notice. The payroll system acts with
// finance authority regardless of which operator ran the payment batch.
func (cs *ClaimService) SettlePaid(ctx context.Context, processedBy, targetID, reference string) error {
	actor := workflow.Actor{ID: processedBy, Roles: []string{string(rbac.RoleFinance)}}
	if err := cs.MarkPaid(ctx, actor, targetID); err != nil {
		return err
	}
	log.Printf("Claim %s settled by payroll (reference %s)", targetID, reference)
	return nil
}

func (cs *ClaimService) findByHex(ctx context.Context, id string) (*models.Claim, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid claim ID format", apperr.ErrValidation)
	}
	return cs.ClaimRepo.FindByID(ctx, oid)
}

func (cs *ClaimService) publishAudit(ctx context.Context, eventType events.EventType, actorID, action, targetID, detail string) {
	if cs.eventPublisher == nil {
		return
	}
	if err := cs.eventPublisher.PublishAudit(ctx, eventType, actorID, action, "claim", targetID, detail); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
