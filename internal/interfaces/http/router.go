package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Crm-api/internal/application/auth"
	"github.com/jhoicas/Crm-api/internal/application/calendar"
	"github.com/jhoicas/Crm-api/internal/application/sales"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BusinessUC *usecase.BusinessUseCase
	PipelineUC *usecase.PipelineUseCase
	StageUC    *usecase.StageUseCase
	DealUC     *usecase.DealUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CartUC     *sales.CartUseCase
	CheckoutUC *sales.CheckoutUseCase
	CalendarUC *calendar.CalendarUseCase
	Hub        *realtime.Hub
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Callback OAuth del calendario (público: lo invoca la redirección del
	// proveedor; el state identifica al usuario).
	calendarHandler := NewCalendarHandler(deps.CalendarUC)
	api.Get("/calendar/callback", calendarHandler.Callback)

	// Websocket de invalidación (el token viaja por query).
	realtimeHandler := NewRealtimeHandler(deps.Hub, deps.JWTSecret)
	api.Get("/realtime", realtimeHandler.Upgrade, realtimeHandler.Serve())

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/user", AuthMiddleware(deps.JWTSecret))

	// Calendario (protegido)
	calendarGroup := protected.Group("/calendar")
	calendarGroup.Get("/connect", calendarHandler.Connect)
	calendarGroup.Get("/status", calendarHandler.Status)
	calendarGroup.Delete("/disconnect", calendarHandler.Disconnect)

	// Negocios del usuario (protegido)
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	protected.Get("/businesses", businessHandler.List)
	protected.Post("/businesses", businessHandler.Create)

	// Todo lo demás cuelga del negocio y verifica pertenencia.
	biz := protected.Group("/businesses/:businessID", RequireBusinessAccess(deps.BusinessUC))
	biz.Get("/", businessHandler.GetByID)

	// Pipelines y tablero
	pipelineHandler := NewPipelineHandler(deps.PipelineUC)
	pipelines := biz.Group("/pipelines")
	pipelines.Get("/", pipelineHandler.List)
	pipelines.Post("/", pipelineHandler.Create)
	pipelines.Get("/:pipelineID", pipelineHandler.GetByID)
	// La configuración del pipeline (mensajería incluida) es solo de admin.
	pipelines.Put("/:pipelineID", RequireRole(entity.RoleAdmin), pipelineHandler.Update)
	pipelines.Get("/:pipelineID/board", pipelineHandler.Board)
	pipelines.Get("/:pipelineID/metrics", pipelineHandler.Metrics)

	// Etapas
	stageHandler := NewStageHandler(deps.StageUC)
	pipelines.Post("/:pipelineID/stages", stageHandler.Create)
	biz.Put("/stages/:id", stageHandler.Update)
	biz.Post("/stages/:id/move", stageHandler.Move)

	// Deals
	dealHandler := NewDealHandler(deps.DealUC)
	pipelines.Post("/:pipelineID/deals", dealHandler.Create)
	biz.Get("/deals/:id", dealHandler.GetByID)
	biz.Put("/deals/:id", dealHandler.Update)
	biz.Post("/deals/:id/move", dealHandler.Move)
	biz.Post("/deals/:id/archive", dealHandler.Archive)

	// Inventario
	productHandler := NewProductHandler(deps.ProductUC)
	products := biz.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := biz.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	// Borrar categorías es solo de admin.
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Punto de venta: carrito y checkout (admin y vendedor)
	pos := biz.Group("/", RequireRole(entity.RoleAdmin, entity.RoleVendedor))
	cartHandler := NewCartHandler(deps.CartUC)
	cart := pos.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:productID", cartHandler.SetQuantity)
	cart.Delete("/items/:productID", cartHandler.Remove)

	saleHandler := NewSaleHandler(deps.CheckoutUC)
	pos.Post("/checkout", saleHandler.Checkout)
	salesGroup := biz.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
}
