package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/audit"
	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/dto"
)

// ======================================================
// CHECK ELIGIBILITY
// ======================================================

type CheckEligibility struct {
	repo   domain.Repository
	window time.Duration
}

func NewCheckEligibility(
	repo domain.Repository,
	window time.Duration,
) *CheckEligibility {
	return &CheckEligibility{
		repo:   repo,
		window: window,
	}
}

func (uc *CheckEligibility) Execute(
	ctx context.Context,
	userID uint,
) (domain.Eligibility, error) {
	return uc.repo.EvaluateEligibility(ctx, userID, uc.window)
}

// ======================================================
// CLAIM
// ======================================================

type ClaimResult struct {
	ClaimID     uuid.UUID          `json:"claim_id"`
	Eligibility domain.Eligibility `json:"-"`
}

type ClaimFreeConsultation struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	window time.Duration
}

func NewClaimFreeConsultation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	window time.Duration,
) *ClaimFreeConsultation {
	return &ClaimFreeConsultation{
		repo:   repo,
		audit:  audit,
		window: window,
	}
}

// Execute claims the phone-gated free consultation. The repository
// re-validates eligibility in the same transaction as the log insert;
// an ineligible outcome is reported through the Eligibility value, not
// as an error.
func (uc *ClaimFreeConsultation) Execute(
	ctx context.Context,
	userID uint,
) (*ClaimResult, domain.Eligibility, error) {

	claim, result, err := uc.repo.ClaimFree(ctx, userID, uc.window)
	if err != nil {
		return nil, domain.Eligibility{}, err
	}
	if claim == nil {
		return nil, result, nil
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "free_consultation_claimed",
		Entity:   "consultation_log",
		EntityID: claim.ID.String(),
	})

	return &ClaimResult{ClaimID: claim.ID, Eligibility: result}, result, nil
}

// ======================================================
// CLAIM HISTORY
// ======================================================

type ListClaims struct {
	repo domain.Repository
}

func NewListClaims(repo domain.Repository) *ListClaims {
	return &ListClaims{repo: repo}
}

func (uc *ListClaims) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.ClaimListDTO, error) {

	claims, err := uc.repo.ListClaimsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClaimListDTO, 0, len(claims))
	for _, c := range claims {
		out = append(out, dto.ClaimListDTO{
			ID:        c.ID,
			Phone:     c.Phone,
			CreatedAt: c.CreatedAt,
		})
	}

	return out, nil
}
