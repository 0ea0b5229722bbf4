package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/avatax-connector/internal/application/auth"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Submissions SubmissionService
	Status      StatusService
	Gatherer    prometheus.Gatherer // nil = sin /metrics
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth: login público, registro solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authn, RequireRole(entity.RoleAdmin), authHandler.Register)

	avataxHandler := NewAvaTaxHandler(deps.Submissions, deps.Status)
	submitters := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	readers := RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleAuditor)

	// Envío de documentos (protegido)
	api.Post("/invoices/:id/avatax", authn, submitters, avataxHandler.SubmitInvoice)
	api.Post("/creditmemos/:id/avatax", authn, submitters, avataxHandler.SubmitCreditMemo)

	// Estado por tienda (protegido, acotado a la tienda del token)
	storeScope := RequireStoreAccess()
	api.Get("/stores/:id/avatax/ping", authn, readers, storeScope, avataxHandler.Ping)
	api.Get("/stores/:id/avatax/status", authn, readers, storeScope, avataxHandler.ErrorStatus)
	api.Get("/stores/:id/avatax/log", authn, readers, storeScope, avataxHandler.AuditLog)
}
