package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/hotel-booking-assistant/internal/conversation"
	"github.com/wolfman30/hotel-booking-assistant/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/hotel-booking-assistant/internal/http/middleware"
	"github.com/wolfman30/hotel-booking-assistant/internal/webchat"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	WebChatHandler      *webchat.Handler
	KnowledgeHandler    *handlers.KnowledgeHandler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
	AdminAuthSecret     string
	RateLimitPerMinute  int

	// Bookings backs the staff dashboard; admin routes are skipped when nil.
	Bookings handlers.BookingReader
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Group(func(public chi.Router) {
		public.Get("/health", health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Route("/chat", func(chat chi.Router) {
		chat.Use(httpmiddleware.ChatRateLimit(cfg.RateLimitPerMinute))
		if cfg.ConversationHandler != nil {
			chat.Post("/message", cfg.ConversationHandler.Message)
			chat.Get("/sessions/{sessionID}/history", cfg.ConversationHandler.History)
			chat.Delete("/sessions/{sessionID}", cfg.ConversationHandler.Reset)
		}
		if cfg.WebChatHandler != nil {
			chat.Get("/ws", cfg.WebChatHandler.HandleWebSocket)
		}
	})

	// Staff routes (protected by HMAC JWT)
	if cfg.AdminAuthSecret != "" {
		adminAuth := httpmiddleware.AdminJWT(cfg.AdminAuthSecret)
		if cfg.KnowledgeHandler != nil {
			r.With(adminAuth).Post("/knowledge/documents", cfg.KnowledgeHandler.UploadDocuments)
		}
		if cfg.Bookings != nil {
			r.Route("/admin", func(admin chi.Router) {
				admin.Use(adminAuth)
				handlers.RegisterAdminRoutes(admin, cfg.Bookings, cfg.Logger)
			})
		}
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
