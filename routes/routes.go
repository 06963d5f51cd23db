package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/handlers"
	"github.com/mikeandholly/wedding-api/rules"
	"github.com/mikeandholly/wedding-api/services"
)

// Services bundles the constructed service layer so route setup stays a
// single wiring point.
type Services struct {
	Invitees    *services.InviteeService
	Guests      *services.GuestService
	Events      *services.EventService
	LoginTokens *services.LoginTokenService
	Email       *services.EmailService
	Backup      *services.BackupService
	Rules       *rules.Engine
}

// SetupAuthRoutes wires the public authentication endpoints.
func SetupAuthRoutes(rg *gin.RouterGroup, s *Services) {
	authHandler := &handlers.AuthHandler{
		Invitees:    s.Invitees,
		Guests:      s.Guests,
		LoginTokens: s.LoginTokens,
		Email:       s.Email,
	}

	rg.POST("/auth/admin/login", authHandler.AdminLogin)
	rg.POST("/auth/guest/login", authHandler.GuestLogin)
	rg.GET("/auth/verify", authHandler.VerifyLogin)
}

// SetupWebhookRoutes wires the survey-tool ingestion endpoint.
func SetupWebhookRoutes(rg *gin.RouterGroup, s *Services, ws *handlers.WSHandler) {
	webhookHandler := &handlers.WebhookHandler{
		Invitees: s.Invitees,
		Guests:   s.Guests,
		WS:       ws,
	}

	rg.POST("/webhooks/typeform", webhookHandler.IngestTypeform)
}

// SetupInviteeRoutes wires the protected invitee surface.
func SetupInviteeRoutes(rg *gin.RouterGroup, s *Services, ws *handlers.WSHandler) {
	h := &handlers.InviteeHandler{Invitees: s.Invitees, Rules: s.Rules, WS: ws}

	rg.GET("/invitees", h.ListInvitees)
	rg.GET("/invitees/me", h.GetMyInvitee)
	rg.GET("/invitees/:id", h.GetInvitee)
	rg.PUT("/invitees/:id", h.UpdateInvitee)
	rg.POST("/invitees/:id/rsvp", h.Rsvp)
	rg.POST("/invitees/:id/lodging", h.BookLodging)
	rg.PUT("/invitees/:id/guest-count", h.SetGuestCount)
}

// SetupGuestRoutes wires the protected guest surface.
func SetupGuestRoutes(rg *gin.RouterGroup, s *Services, ws *handlers.WSHandler) {
	h := &handlers.GuestHandler{
		Guests:   s.Guests,
		Invitees: s.Invitees,
		Rules:    s.Rules,
		WS:       ws,
	}

	rg.GET("/guests", h.ListGuests)
	rg.GET("/guests/mine", h.ListMyGuests)
	rg.GET("/guests/:id", h.GetGuest)
	rg.POST("/guests", h.CreateGuest)
	rg.PUT("/guests/:id", h.UpdateGuest)
	rg.DELETE("/guests/:id", h.DeleteGuest)
	rg.POST("/guests/:id/vax", h.VaxDisposition)
	rg.POST("/guests/:id/events/:eventId/rsvp", h.EventRsvp)
	rg.POST("/guests/:id/dinner", h.DinnerChoice)
}

// SetupEventRoutes wires the protected event surface.
func SetupEventRoutes(rg *gin.RouterGroup, s *Services, ws *handlers.WSHandler) {
	h := &handlers.EventHandler{
		Events: s.Events,
		Guests: s.Guests,
		Rules:  s.Rules,
		WS:     ws,
	}

	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
	rg.POST("/events", h.CreateEvent)
	rg.PUT("/events/:id", h.UpdateEvent)
	rg.DELETE("/events/:id", h.DeleteEvent)
	rg.POST("/events/:id/invitations", h.Invitations)
	rg.POST("/events/:id/invite-all", h.InviteAll)
	rg.DELETE("/events/:id/invite-all", h.UninviteAll)
}

// SetupMediaRoutes wires the signed Street View URL endpoint.
func SetupMediaRoutes(rg *gin.RouterGroup) {
	h := &handlers.MediaHandler{}
	rg.POST("/media/streetview", h.StreetViewStatic)
}

// SetupAdminRoutes wires the admin-only operations.
func SetupAdminRoutes(rg *gin.RouterGroup, s *Services) {
	h := &handlers.AdminHandler{Backup: s.Backup}
	rg.POST("/admin/backup", h.RunBackup)
	rg.POST("/admin/totp", h.ProvisionTOTP)
}
