package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/httpresp"
	"github.com/nutriplan/consultation-api/internal/middleware"
	ucConsultation "github.com/nutriplan/consultation-api/internal/usecase/consultation"
)

// AdminHandler drives the consultant-side status transitions.
type AdminHandler struct {
	confirmUC  *ucConsultation.ConfirmBooking
	completeUC *ucConsultation.CompleteBooking
}

func NewAdminHandler(
	confirmUC *ucConsultation.ConfirmBooking,
	completeUC *ucConsultation.CompleteBooking,
) *AdminHandler {
	return &AdminHandler{
		confirmUC:  confirmUC,
		completeUC: completeUC,
	}
}

func (h *AdminHandler) Confirm(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid consultation id.")
		return
	}

	booking, err := h.confirmUC.Execute(c.Request.Context(), adminID, bookingID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, booking)
}

func (h *AdminHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid consultation id.")
		return
	}

	booking, err := h.completeUC.Execute(c.Request.Context(), adminID, bookingID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, booking)
}
