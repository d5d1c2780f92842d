// Package artechoes предоставляет маршруты для основного приложения.
package artechoes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/artechoes/artechoes/internal/config"
	"github.com/artechoes/artechoes/internal/http/handlers/artwork/list"
	"github.com/artechoes/artechoes/internal/http/handlers/artwork/listbyuser"
	"github.com/artechoes/artechoes/internal/http/handlers/artwork/read"
	"github.com/artechoes/artechoes/internal/http/handlers/auth/forgotpassword"
	"github.com/artechoes/artechoes/internal/http/handlers/auth/login"
	"github.com/artechoes/artechoes/internal/http/handlers/auth/resetpassword"
	"github.com/artechoes/artechoes/internal/http/handlers/auth/signup"
	"github.com/artechoes/artechoes/internal/http/handlers/auth/validatetoken"
	"github.com/artechoes/artechoes/internal/http/handlers/payment/ordercreate"
	"github.com/artechoes/artechoes/internal/http/handlers/payment/orderlist"
	"github.com/artechoes/artechoes/internal/http/handlers/payment/orderverify"
	profileget "github.com/artechoes/artechoes/internal/http/handlers/profile/get"
	profileupdate "github.com/artechoes/artechoes/internal/http/handlers/profile/update"
	"github.com/artechoes/artechoes/internal/http/handlers/profile/uploadpic"
	"github.com/artechoes/artechoes/internal/http/handlers/styletransfer/transfer"
	suggestioncreate "github.com/artechoes/artechoes/internal/http/handlers/suggestion/create"
	"github.com/artechoes/artechoes/internal/http/handlers/upload/classify"
	"github.com/artechoes/artechoes/internal/http/middlewarectx"
	artworkservice "github.com/artechoes/artechoes/internal/services/artwork"
	authservice "github.com/artechoes/artechoes/internal/services/auth"
	paymentservice "github.com/artechoes/artechoes/internal/services/payment"
	profileservice "github.com/artechoes/artechoes/internal/services/profile"
	styleservice "github.com/artechoes/artechoes/internal/services/styletransfer"
	suggestionservice "github.com/artechoes/artechoes/internal/services/suggestion"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.Service,
	artworkService *artworkservice.Service,
	styleService *styleservice.Service,
	paymentService *paymentservice.Service,
	profileService *profileservice.Service,
	suggestionService *suggestionservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", signup.New(logger, authService).ServeHTTP)
			r.Post("/login", login.New(logger, authService).ServeHTTP)
			r.Post("/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
			r.Post("/reset-password", resetpassword.New(logger, authService).ServeHTTP)
		})
		r.Post("/validate-token", validatetoken.New(logger, authService).ServeHTTP)

		r.Get("/artworks", list.New(logger, artworkService).ServeHTTP)
		r.Get("/artworks/{id}", read.New(logger, artworkService).ServeHTTP)
		r.Get("/artworks/user/{userId}", listbyuser.New(logger, artworkService).ServeHTTP)

		r.Post("/upload/classify", classify.New(logger, artworkService, cfg.UploadsDir).ServeHTTP)
		r.Post("/style-transfer", transfer.New(logger, styleService).ServeHTTP)
		r.Post("/suggestions", suggestioncreate.New(logger, suggestionService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/payments/orders", ordercreate.New(logger, paymentService).ServeHTTP)
			r.Post("/payments/verify", orderverify.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/user", orderlist.New(logger, paymentService).ServeHTTP)
			r.Get("/profile", profileget.New(logger, profileService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, profileService).ServeHTTP)
			r.Post("/profile/upload", uploadpic.New(logger, profileService).ServeHTTP)
		})
	})

	// Статика с загруженными работами и аватарами
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/profile-pictures/*", http.StripPrefix("/profile-pictures/",
		http.FileServer(http.Dir(cfg.ProfilePicsDir))))

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
