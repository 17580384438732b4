package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/core/api/services"
)

// FilterOptionsHandler atende as rotas de opções de filtro
type FilterOptionsHandler struct {
	BaseHandler
	service *services.FilterOptionsService
}

func NewFilterOptionsHandler(service *services.FilterOptionsService) *FilterOptionsHandler {
	return &FilterOptionsHandler{service: service}
}

// All retorna todas as categorias de filtro com seus valores distintos
func (h *FilterOptionsHandler) All(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		options, err := h.service.AllOptions(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, options, nil)
		return nil
	})
}

// ByCategory retorna os valores de uma única categoria. Categoria desconhecida
// responde lista vazia, não erro.
func (h *FilterOptionsHandler) ByCategory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		category := c.Params("category")
		values := h.service.OptionsByCategory(c.Context(), category)
		h.HandleResponse(c, fiber.Map{
			"category": category,
			"options":  values,
			"count":    len(values),
		}, nil)
		return nil
	})
}
