package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
)

// defaultCoordinatesLimit é o limit aplicado quando o cliente não pagina
const defaultCoordinatesLimit = 1000

// OcurrenceHandler atende as rotas de leitura da collection bruta `ocorrencia`
type OcurrenceHandler struct {
	BaseHandler
	service *services.OcurrenceService
}

func NewOcurrenceHandler(service *services.OcurrenceService) *OcurrenceHandler {
	return &OcurrenceHandler{service: service}
}

// Root responde a raiz do grupo, usada como verificação rápida de rota
func (h *OcurrenceHandler) Root(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		h.HandleResponse(c, fiber.Map{"message": "Ocurrence"}, nil)
		return nil
	})
}

// Coordinates retorna a página de ocorrências com coordenadas válidas e o
// total de registros que satisfazem o predicado
func (h *OcurrenceHandler) Coordinates(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query dto.CoordinatesQuery
		if err := h.ParseRequestQuery(c, &query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if query.Limit == 0 {
			query.Limit = defaultCoordinatesLimit
		}

		log := logger.WithRequest(c)
		log.Infof("Buscando coordenadas de ocorrências: limit=%d, skip=%d", query.Limit, query.Skip)

		ocurrences, err := h.service.FindWithCoordinates(c.Context(), query.Limit, query.Skip)
		if err != nil {
			h.HandleResponse(c, nil, common.ConvertMongoError(err))
			return nil
		}

		total, err := h.service.CountWithCoordinates(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, common.ConvertMongoError(err))
			return nil
		}

		log.Infof("Retornando %d ocorrências de um total de %d", len(ocurrences), total)

		h.HandleResponse(c, dto.OcurrenceListResponse{
			Total: total,
			Count: len(ocurrences),
			Data:  ocurrences,
		}, nil)
		return nil
	})
}
