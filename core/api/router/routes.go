package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/api/handler"
	"github.com/CauanS29/DataPlane/core/api/middleware"
	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/database"
)

// ============================================================================
// IMPORTANTE: registro de middleware no Fiber v3
// ============================================================================
//
// O Fiber v3 não executa middleware passado diretamente na rota:
//
//	router.Get("/path", middleware, handler)  ← middleware NÃO é chamado
//
// O registro correto é criar o grupo e anexar o middleware via .Use():
//
//	group := router.Group(prefix)
//	group.Use(middleware)
//	group.Get(path, handler)
//
// Todas as rotas protegidas deste arquivo seguem esse padrão.
// ============================================================================

// RoutePrefix contém os prefixos base da API
type RoutePrefix struct {
	Base string // Prefixo base (/api)
	V1   string // Prefixo da versão 1 (/api/v1)
}

// NewRoutePrefix cria os prefixos com os valores padrão
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Handlers agrupa os handlers da API já construídos com suas dependências
type Handlers struct {
	Health          *handler.HealthHandler
	Ocurrence       *handler.OcurrenceHandler
	MergedOcurrence *handler.MergedOcurrenceHandler
	FilterOptions   *handler.FilterOptionsHandler
	AI              *handler.AIHandler
}

// NewHandlers constrói os services e handlers a partir das dependências
// explícitas (configuração, banco conectado e serviço de inferência, que pode
// ser nil quando os artefatos do modelo não subiram)
func NewHandlers(db *database.MongoDB, predict *services.PredictService) *Handlers {
	return &Handlers{
		Health:          handler.NewHealthHandler(db, predict),
		Ocurrence:       handler.NewOcurrenceHandler(services.NewOcurrenceService(db)),
		MergedOcurrence: handler.NewMergedOcurrenceHandler(services.NewMergedOcurrenceService(db)),
		FilterOptions:   handler.NewFilterOptionsHandler(services.NewFilterOptionsService(db)),
		AI:              handler.NewAIHandler(predict),
	}
}

// RegisterRoutes registra todas as rotas da API sob /api/v1.
// Apenas o grupo /ai exige o API token; as rotas de leitura são públicas.
func RegisterRoutes(app *fiber.App, cfg *config.Configuration, h *Handlers) {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	// Health checks (públicos)
	health := v1.Group("/health")
	health.Get("/", h.Health.Basic)
	health.Get("/detailed", h.Health.Detailed)
	health.Get("/ai", h.Health.AI)

	// Leituras da collection bruta
	ocurrence := v1.Group("/ocurrence")
	ocurrence.Get("/", h.Ocurrence.Root)
	ocurrence.Get("/coordinates", h.Ocurrence.Coordinates)

	// Leituras da collection desnormalizada
	merged := v1.Group("/merged")
	merged.Get("/coordinates", h.MergedOcurrence.Coordinates)
	merged.Get("/stats", h.MergedOcurrence.Stats)

	// Opções de filtro
	filters := v1.Group("/filters")
	filters.Get("/", h.FilterOptions.All)
	filters.Get("/:category", h.FilterOptions.ByCategory)

	// Inferência (protegida pelo API token, registrado via .Use no grupo)
	ai := v1.Group("/ai")
	ai.Use(middleware.APITokenMiddleware(cfg.APIToken))
	ai.Post("/predict", h.AI.Predict)
	ai.Get("/predict/form-options", h.AI.FormOptions)
}
