package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/httpresp"
	"github.com/nutriplan/consultation-api/internal/middleware"
	ucConsultation "github.com/nutriplan/consultation-api/internal/usecase/consultation"
)

// ======================================================
// HANDLER
// ======================================================

type ConsultationHandler struct {
	getScheduleUC *ucConsultation.GetSchedule
	bookUC        *ucConsultation.Book
	cancelUC      *ucConsultation.CancelBooking
	listMyUC      *ucConsultation.ListMyBookings
	eligibilityUC *ucConsultation.CheckEligibility
	claimUC       *ucConsultation.ClaimFreeConsultation
	listClaimsUC  *ucConsultation.ListClaims
}

func NewConsultationHandler(
	getScheduleUC *ucConsultation.GetSchedule,
	bookUC *ucConsultation.Book,
	cancelUC *ucConsultation.CancelBooking,
	listMyUC *ucConsultation.ListMyBookings,
	eligibilityUC *ucConsultation.CheckEligibility,
	claimUC *ucConsultation.ClaimFreeConsultation,
	listClaimsUC *ucConsultation.ListClaims,
) *ConsultationHandler {
	return &ConsultationHandler{
		getScheduleUC: getScheduleUC,
		bookUC:        bookUC,
		cancelUC:      cancelUC,
		listMyUC:      listMyUC,
		eligibilityUC: eligibilityUC,
		claimUC:       claimUC,
		listClaimsUC:  listClaimsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	FormID string `json:"form_id"`
}

// ======================================================
// SCHEDULE
// ======================================================

func (h *ConsultationHandler) GetSchedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	days := 0
	if v := c.Query("days"); v != "" {
		days, _ = strconv.Atoi(v)
	}

	result, err := h.getScheduleUC.Execute(c.Request.Context(), userID, days)
	if err != nil {
		httperr.Internal(c, "failed_to_build_schedule", "Failed to build the schedule.")
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// BOOK
// ======================================================

func (h *ConsultationHandler) Book(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Date and time are required.")
		return
	}

	var formID *uuid.UUID
	if req.FormID != "" {
		id, err := uuid.Parse(req.FormID)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidationError, "Invalid form id.")
			return
		}
		formID = &id
	}

	booking, err := h.bookUC.Execute(c.Request.Context(), ucConsultation.BookInput{
		UserID: userID,
		Date:   req.Date,
		Time:   req.Time,
		FormID: formID,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ======================================================
// MY BOOKINGS
// ======================================================

func (h *ConsultationHandler) ListMy(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listMyUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_consultations", "Failed to list consultations.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL
// ======================================================

func (h *ConsultationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid consultation id.")
		return
	}

	booking, err := h.cancelUC.Execute(c.Request.Context(), userID, bookingID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, booking)
}

// ======================================================
// ELIGIBILITY
// ======================================================

func (h *ConsultationHandler) Eligibility(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	result, err := h.eligibilityUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_check_eligibility", "Failed to check eligibility.")
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// CLAIM
// ======================================================

func (h *ConsultationHandler) Claim(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	claim, eligibility, err := h.claimUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_claim", "Failed to claim the free consultation.")
		return
	}

	if claim == nil {
		status := http.StatusBadRequest
		if eligibility.Reason == httperr.CodePhoneConflict {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error_code": eligibility.Reason,
			"last_claim": eligibility.LastClaim,
		})
		return
	}

	httpresp.OK(c, gin.H{
		"message":  "Free consultation claimed.",
		"claim_id": claim.ClaimID,
	})
}

// ======================================================
// CLAIM HISTORY
// ======================================================

func (h *ConsultationHandler) ListClaims(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	claims, err := h.listClaimsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_claims", "Failed to list claims.")
		return
	}

	httpresp.List(c, claims)
}
