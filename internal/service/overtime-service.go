package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/calc"
	"claimbot/internal/events"
	"claimbot/internal/models"
	"claimbot/internal/rbac"
	"claimbot/internal/repository"
	"claimbot/internal/workflow"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OvertimeService struct {
	OvertimeRepo   *repository.OvertimeRepository
	LedgerRepo     *repository.LedgerRepository
	UserRepo       *repository.UserRepository
	rateService    *RateService
	eventPublisher events.Publisher
}

func NewOvertimeService(eventPublisher events.Publisher, rateService *RateService) *OvertimeService {
	return &OvertimeService{
		OvertimeRepo:   repository.Repositories_instance.OvertimeRepository,
		LedgerRepo:     repository.Repositories_instance.LedgerRepository,
		UserRepo:       repository.Repositories_instance.UserRepository,
		rateService:    rateService,
		eventPublisher: eventPublisher,
	}
}

// Create evaluates and persists a new overtime request. Requests are born
// submitted; the monthly cap is enforced inside the ledger accumulation,
// and an insert failure afterwards releases the hours again so the ledger
// never counts a request that was never stored.
func (ots *OvertimeService) Create(ctx context.Context, actor workflow.Actor, req *models.CreateOvertimeRequest) (*models.OvertimeRequest, error) {
	ownerID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}

	user, err := ots.UserRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	actor.SalaryVerified = user.SalaryVerification == models.SalaryVerificationVerified

	status, err := workflow.InitialStatus(workflow.KindOvertime, actor)
	if err != nil {
		return nil, err
	}

	rateTable, err := ots.rateService.Table(ctx)
	if err != nil {
		return nil, err
	}

	eval, err := calc.EvaluateOvertime(user, rateTable, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := ots.LedgerRepo.TryAccumulate(ctx, ownerID, eval.Month, eval.HoursWorked, calc.MonthlyCapHours); err != nil {
		return nil, err
	}

	request := &models.OvertimeRequest{
		UserID:         ownerID,
		Status:         status,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         req.Reason,
		HoursWorked:    eval.HoursWorked,
		DayType:        eval.DayType,
		RateMultiplier: eval.RateMultiplier,
		HourlyRate:     eval.HourlyRate,
		TotalPayout:    eval.TotalPayout,
	}

	created, err := ots.OvertimeRepo.Create(ctx, request)
	if err != nil {
		if relErr := ots.LedgerRepo.Release(ctx, ownerID, eval.Month, eval.HoursWorked); relErr != nil {
			log.Printf("Warning: failed to release ledger hours after insert failure: %v", relErr)
		}
		return nil, err
	}

	ots.publishAudit(ctx, events.OvertimeCreated, actor.ID, "create", created.ID.Hex(),
		fmt.Sprintf("%.2f hours on %s, payout %.2f", eval.HoursWorked, req.Date, eval.TotalPayout))
	return created, nil
}

func (ots *OvertimeService) Get(ctx context.Context, actor workflow.Actor, id string) (*models.OvertimeRequest, error) {
	request, err := ots.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.UserID.Hex() != actor.ID && !rbac.HasPermission(actor.Roles, "overtime:read:all") {
		return nil, fmt.Errorf("%w: you may only view your own overtime requests", apperr.ErrForbidden)
	}
	return request, nil
}

func (ots *OvertimeService) ListForActor(ctx context.Context, actor workflow.Actor, status models.Status) ([]*models.OvertimeRequest, error) {
	if rbac.HasPermission(actor.Roles, "overtime:read:all") {
		if status != "" {
			return ots.OvertimeRepo.FindByStatus(ctx, status)
		}
		return ots.OvertimeRepo.FindByStatus(ctx, models.StatusSubmitted)
	}

	ownerID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}
	return ots.OvertimeRepo.FindByUser(ctx, ownerID)
}

func (ots *OvertimeService) Decide(ctx context.Context, actor workflow.Actor, id string, approve bool, remarks string) (*models.OvertimeRequest, error) {
	request, err := ots.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	action := workflow.ActionApprove
	eventType := events.OvertimeApproved
	if !approve {
		action = workflow.ActionReject
		eventType = events.OvertimeRejected
	}

	next, err := workflow.Transition(workflow.KindOvertime, request.Status, action, actor, request.UserID.Hex())
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
	if err := ots.OvertimeRepo.TransitionStatus(ctx, request.ID, request.Status, next, set); err != nil {
		return nil, err
	}

	// Rejected hours no longer count toward the month.
	if next == models.StatusRejected {
		if month, mErr := calc.MonthKey(request.Date); mErr == nil {
			if relErr := ots.LedgerRepo.Release(ctx, request.UserID, month, request.HoursWorked); relErr != nil {
				log.Printf("Warning: failed to release ledger hours for rejected request %s: %v", id, relErr)
			}
		}
	}

	request.Status = next
	request.ApprovedBy = approver
	request.ApprovedAt = now
	request.Remarks = remarks

	ots.publishAudit(ctx, eventType, actor.ID, string(action), request.ID.Hex(),
		fmt.Sprintf("overtime %s by %s", next, actor.ID))
	return request, nil
}

// Update re-evaluates the request when time fields change and keeps the
// monthly ledger in step. An edit within the same month moves the entry by
// the hour difference in one guarded update; a move across months claims
// the new month before releasing the old one, so an edit can never sneak
// past the cap either way.
func (ots *OvertimeService) Update(ctx context.Context, actor workflow.Actor, id string, req *models.UpdateOvertimeRequest) (*models.OvertimeRequest, error) {
	request, err := ots.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := workflow.Transition(workflow.KindOvertime, request.Status, workflow.ActionUpdate, actor, request.UserID.Hex()); err != nil {
		return nil, err
	}

	date, start, end := request.Date, request.StartTime, request.EndTime
	timeChanged := false
	if req.Date != nil && *req.Date != date {
		date, timeChanged = *req.Date, true
	}
	if req.StartTime != nil && *req.StartTime != start {
		start, timeChanged = *req.StartTime, true
	}
	if req.EndTime != nil && *req.EndTime != end {
		end, timeChanged = *req.EndTime, true
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}

	if timeChanged {
		user, err := ots.UserRepo.FindByID(ctx, request.UserID)
		if err != nil {
			return nil, err
		}

		rateTable, err := ots.rateService.Table(ctx)
		if err != nil {
			return nil, err
		}

		eval, err := calc.EvaluateOvertime(user, rateTable, date, start, end)
		if err != nil {
			return nil, err
		}

		oldMonth, err := calc.MonthKey(request.Date)
		if err != nil {
			return nil, err
		}

		// Rejected hours were already released, so an elevated edit of a
		// rejected request must leave the ledger alone.
		if request.Status != models.StatusRejected {
			if eval.Month == oldMonth {
				// Same month: the old hours are still counted, so moving
				// by the difference in one guarded update is the only way
				// an edit down from a full month can succeed.
				delta := eval.HoursWorked - request.HoursWorked
				if err := ots.LedgerRepo.TryAdjust(ctx, request.UserID, eval.Month, delta, calc.MonthlyCapHours); err != nil {
					return nil, err
				}
			} else {
				if _, err := ots.LedgerRepo.TryAccumulate(ctx, request.UserID, eval.Month, eval.HoursWorked, calc.MonthlyCapHours); err != nil {
					return nil, err
				}
				if relErr := ots.LedgerRepo.Release(ctx, request.UserID, oldMonth, request.HoursWorked); relErr != nil {
					log.Printf("Warning: failed to release superseded ledger hours for %s: %v", id, relErr)
				}
			}
		}

		request.Date = date
		request.StartTime = start
		request.EndTime = end
		request.HoursWorked = eval.HoursWorked
		request.DayType = eval.DayType
		request.RateMultiplier = eval.RateMultiplier
		request.HourlyRate = eval.HourlyRate
		request.TotalPayout = eval.TotalPayout
	}

	if err := ots.OvertimeRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (ots *OvertimeService) Delete(ctx context.Context, actor workflow.Actor, id string) error {
	request, err := ots.findByHex(ctx, id)
	if err != nil {
		return err
	}

	if _, err := workflow.Transition(workflow.KindOvertime, request.Status, workflow.ActionDelete, actor, request.UserID.Hex()); err != nil {
		return err
	}

	if err := ots.OvertimeRepo.Delete(ctx, request.ID); err != nil {
		return err
	}

	// Hours of a live request stop counting once it is gone; rejected
	// requests were already released and paid ones stay on the record.
	if request.Status == models.StatusSubmitted || request.Status == models.StatusApproved {
		if month, mErr := calc.MonthKey(request.Date); mErr == nil {
			if relErr := ots.LedgerRepo.Release(ctx, request.UserID, month, request.HoursWorked); relErr != nil {
				log.Printf("Warning: failed to release ledger hours for deleted request %s: %v", id, relErr)
			}
		}
	}
	return nil
}

func (ots *OvertimeService) MarkPaid(ctx context.Context, actor workflow.Actor, id string) error {
	request, err := ots.findByHex(ctx, id)
	if err != nil {
		return err
	}

	next, err := workflow.Transition(workflow.KindOvertime, request.Status, workflow.ActionMarkPaid, actor, request.UserID.Hex())
	if err != nil {
		return err
	}

	if err := ots.OvertimeRepo.TransitionStatus(ctx, request.ID, request.Status, next, nil); err != nil {
		return err
	}

	ots.publishAudit(ctx, events.DocumentPaid, actor.ID, string(workflow.ActionMarkPaid), request.ID.Hex(), "overtime paid out")
	return nil
}

// SettlePaid handles a payroll paid notice for an approved overtime request.
func (ots *OvertimeService) SettlePaid(ctx context.Context, processedBy, targetID, reference string) error {
	actor := workflow.Actor{ID: processedBy, Roles: []string{string(rbac.RoleFinance)}}
	if err := ots.MarkPaid(ctx, actor, targetID); err != nil {
		return err
	}
	log.Printf("Overtime request %s settled by payroll (reference %s)", targetID, reference)
	return nil
}

// Ledger returns the month's accumulated hours for the actor, used by the
// profile screen to show remaining allowance.
func (ots *OvertimeService) Ledger(ctx context.Context, actor workflow.Actor, month string) (*models.OvertimeLedger, error) {
	ownerID, err := bson.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format", apperr.ErrValidation)
	}
	return ots.LedgerRepo.Find(ctx, ownerID, month)
}

func (ots *OvertimeService) findByHex(ctx context.Context, id string) (*models.OvertimeRequest, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid overtime request ID format", apperr.ErrValidation)
	}
	return ots.OvertimeRepo.FindByID(ctx, oid)
}

func (ots *OvertimeService) publishAudit(ctx context.Context, eventType events.EventType, actorID, action, targetID, detail string) {
	if ots.eventPublisher == nil {
		return
	}
	if err := ots.eventPublisher.PublishAudit(ctx, eventType, actorID, action, "overtime", targetID, detail); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
