package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriplan/consultation-api/internal/httperr"
)

var businessStatus = map[string]int{
	httperr.CodeConflict:        http.StatusConflict,
	httperr.CodeSlotTaken:       http.StatusConflict,
	httperr.CodePhoneConflict:   http.StatusConflict,
	httperr.CodeInvalidState:    http.StatusBadRequest,
	httperr.CodeValidationError: http.StatusBadRequest,
	httperr.CodeExpired:         http.StatusBadRequest,
	httperr.CodeCooldownActive:  http.StatusBadRequest,
	httperr.CodeNotFound:        http.StatusNotFound,
	httperr.CodeTransportError:  http.StatusBadGateway,
}

var businessMessage = map[string]string{
	httperr.CodeConflict:        "Already claimed by another account.",
	httperr.CodeSlotTaken:       "The selected time is already booked.",
	httperr.CodePhoneConflict:   "This phone number is verified on another account.",
	httperr.CodeInvalidState:    "The operation is not valid in the current state.",
	httperr.CodeValidationError: "Invalid input.",
	httperr.CodeExpired:         "The verification code has expired. Request a new one.",
	httperr.CodeCooldownActive:  "The free consultation was already used this month.",
	httperr.CodeNotFound:        "Not found.",
	httperr.CodeTransportError:  "SMS delivery failed. Try again.",
}

// writeBusiness maps a business error onto its HTTP status and stable
// reason code; anything else becomes an opaque 500.
func writeBusiness(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	if code == "" {
		httperr.Internal(c, "internal_error", "Internal server error.")
		return
	}

	status, ok := businessStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg, ok := businessMessage[code]
	if !ok {
		msg = "Request failed."
	}

	httperr.Write(c, status, code, msg)
}
