package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/httpresp"
	"github.com/nutriplan/consultation-api/internal/middleware"
	"github.com/nutriplan/consultation-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, gin.H{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"phone":             user.Phone,
		"phone_verified":    user.PhoneVerified,
		"phone_verified_at": user.PhoneVerifiedAt,
		"has_consultation":  user.HasConsultation,
	})
}
