package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
)

// Version da API, reportada nos health checks
const Version = "1.0.0"

// HealthHandler atende as rotas de health check
type HealthHandler struct {
	BaseHandler
	db      *database.MongoDB
	predict *services.PredictService
}

func NewHealthHandler(db *database.MongoDB, predict *services.PredictService) *HealthHandler {
	return &HealthHandler{db: db, predict: predict}
}

// Basic responde o health check simples, sem tocar em dependências
func (h *HealthHandler) Basic(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		return JSONResponse(c, fiber.StatusOK, fiber.Map{
			"status":  "healthy",
			"version": Version,
		})
	})
}

// Detailed verifica as dependências (banco e modelo) e reporta o estado de
// cada uma. O status geral degrada para unhealthy se qualquer serviço falhar.
func (h *HealthHandler) Detailed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		status := "healthy"
		dbStatus := "healthy"
		modelStatus := "healthy"

		if err := h.db.Ping(c.Context()); err != nil {
			logger.WithRequest(c).WithError(err).Error("Erro no health check do banco")
			dbStatus = "unhealthy"
			status = "unhealthy"
		}

		if h.predict == nil {
			modelStatus = "unhealthy"
			status = "unhealthy"
		}

		return JSONResponse(c, fiber.StatusOK, fiber.Map{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   Version,
			"services": fiber.Map{
				"database": dbStatus,
				"ai_model": modelStatus,
			},
		})
	})
}

// AI reporta o estado do serviço de inferência e os metadados do modelo
func (h *HealthHandler) AI(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if h.predict == nil {
			return JSONResponse(c, fiber.StatusOK, fiber.Map{
				"status": "unhealthy",
				"error":  "artefatos do modelo não carregados",
			})
		}

		return JSONResponse(c, fiber.StatusOK, fiber.Map{
			"status":     "healthy",
			"model_info": h.predict.ModelInfo(),
		})
	})
}
