package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nutriplan/consultation-api/internal/audit"
	"github.com/nutriplan/consultation-api/internal/config"
	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/handlers"
	infraRepo "github.com/nutriplan/consultation-api/internal/infra/repository"
	"github.com/nutriplan/consultation-api/internal/middleware"
	"github.com/nutriplan/consultation-api/internal/sms"
	"github.com/nutriplan/consultation-api/internal/timezone"
	ucConsultation "github.com/nutriplan/consultation-api/internal/usecase/consultation"
	ucPhone "github.com/nutriplan/consultation-api/internal/usecase/phone"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	consultationRepo := infraRepo.NewConsultationGormRepository(db)
	phoneRepo := infraRepo.NewPhoneGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	smsSender := sms.NewSender(cfg.SMSEnabled, cfg.SMSRuAPIID, cfg.SMSRuFrom)

	loc := timezone.Location(cfg.Timezone)
	calendar := domain.NewCalendar(cfg.ScheduleOpenHour, cfg.ScheduleCloseHour)
	cooldown := time.Duration(cfg.FreeClaimCooldownDays) * 24 * time.Hour

	// ======================================================
	// USE CASES — CONSULTATIONS
	// ======================================================
	getScheduleUC := ucConsultation.NewGetSchedule(
		consultationRepo,
		calendar,
		loc,
		cfg.FirstPrice,
		cfg.StandardPrice,
	)

	bookUC := ucConsultation.NewBook(
		consultationRepo,
		auditDispatcher,
		calendar,
		loc,
		cfg.FirstPrice,
		cfg.StandardPrice,
	)

	cancelUC := ucConsultation.NewCancelBooking(
		consultationRepo,
		auditDispatcher,
		loc,
	)

	listMyUC := ucConsultation.NewListMyBookings(consultationRepo)

	eligibilityUC := ucConsultation.NewCheckEligibility(consultationRepo, cooldown)

	claimUC := ucConsultation.NewClaimFreeConsultation(
		consultationRepo,
		auditDispatcher,
		cooldown,
	)

	listClaimsUC := ucConsultation.NewListClaims(consultationRepo)

	confirmUC := ucConsultation.NewConfirmBooking(consultationRepo, auditDispatcher)
	completeUC := ucConsultation.NewCompleteBooking(consultationRepo, auditDispatcher, loc)

	// ======================================================
	// USE CASES — PHONE TRUST
	// ======================================================
	setPhoneUC := ucPhone.NewSetPhone(phoneRepo, auditDispatcher)

	requestCodeUC := ucPhone.NewRequestCode(
		phoneRepo,
		smsSender,
		auditDispatcher,
		time.Duration(cfg.CodeTTLMin)*time.Minute,
	)

	confirmCodeUC := ucPhone.NewConfirmCode(phoneRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	phoneHandler := handlers.NewPhoneHandler(setPhoneUC, requestCodeUC, confirmCodeUC)

	consultationHandler := handlers.NewConsultationHandler(
		getScheduleUC,
		bookUC,
		cancelUC,
		listMyUC,
		eligibilityUC,
		claimUC,
		listClaimsUC,
	)

	adminHandler := handlers.NewAdminHandler(confirmUC, completeUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// PHONE TRUST
			// ------------------------------
			secured.POST("/me/phone", phoneHandler.SetPhone)
			secured.POST(
				"/me/phone/verify",
				middleware.RateLimit(rdb, "phone_code", cfg.CodeRateLimit, time.Hour),
				phoneHandler.RequestCode,
			)
			secured.POST("/me/phone/confirm", phoneHandler.ConfirmCode)

			// ------------------------------
			// CONSULTATIONS
			// ------------------------------
			secured.GET("/consultations/schedule", consultationHandler.GetSchedule)
			secured.POST("/consultations/book", consultationHandler.Book)
			secured.GET("/consultations/my", consultationHandler.ListMy)
			secured.POST("/consultations/:id/cancel", consultationHandler.Cancel)
			secured.GET("/consultations/eligibility", consultationHandler.Eligibility)
			secured.POST("/consultations/claim", consultationHandler.Claim)
			secured.GET("/consultations/claims", consultationHandler.ListClaims)

			// ------------------------------
			// ADMIN
			// ------------------------------
			adminAPI := secured.Group("/admin")
			adminAPI.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				adminAPI.PATCH("/consultations/:id/confirm", adminHandler.Confirm)
				adminAPI.PATCH("/consultations/:id/complete", adminHandler.Complete)
			}
		}
	}
}
