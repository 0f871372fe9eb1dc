package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriplan/consultation-api/internal/httpresp"
	"github.com/nutriplan/consultation-api/internal/middleware"
	ucPhone "github.com/nutriplan/consultation-api/internal/usecase/phone"
)

// ======================================================
// HANDLER
// ======================================================

type PhoneHandler struct {
	setPhoneUC    *ucPhone.SetPhone
	requestCodeUC *ucPhone.RequestCode
	confirmCodeUC *ucPhone.ConfirmCode
}

func NewPhoneHandler(
	setPhoneUC *ucPhone.SetPhone,
	requestCodeUC *ucPhone.RequestCode,
	confirmCodeUC *ucPhone.ConfirmCode,
) *PhoneHandler {
	return &PhoneHandler{
		setPhoneUC:    setPhoneUC,
		requestCodeUC: requestCodeUC,
		confirmCodeUC: confirmCodeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SetPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type ConfirmCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ======================================================
// SET PHONE
// ======================================================

func (h *PhoneHandler) SetPhone(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SetPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if err := h.setPhoneUC.Execute(c.Request.Context(), userID, req.Phone); err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Phone number saved. Request an SMS code to confirm it.",
	})
}

// ======================================================
// REQUEST CODE
// ======================================================

func (h *PhoneHandler) RequestCode(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.requestCodeUC.Execute(c.Request.Context(), userID); err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "SMS code sent to your phone number.",
	})
}

// ======================================================
// CONFIRM CODE
// ======================================================

func (h *PhoneHandler) ConfirmCode(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if err := h.confirmCodeUC.Execute(c.Request.Context(), userID, req.Code); err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Phone number confirmed.",
	})
}
