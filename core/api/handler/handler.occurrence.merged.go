package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
)

// defaultMergedLimit é o limit do endpoint mesclado quando o cliente não pagina
const defaultMergedLimit = 20000

// MergedOcurrenceHandler atende as rotas da collection desnormalizada
// `ocorrencia_completa`
type MergedOcurrenceHandler struct {
	BaseHandler
	service *services.MergedOcurrenceService
}

func NewMergedOcurrenceHandler(service *services.MergedOcurrenceService) *MergedOcurrenceHandler {
	return &MergedOcurrenceHandler{service: service}
}

// Coordinates retorna a página de ocorrências completas que satisfazem os
// filtros opcionais, com o total correspondente
func (h *MergedOcurrenceHandler) Coordinates(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query dto.MergedCoordinatesQuery
		if err := h.ParseRequestQuery(c, &query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if query.Limit == 0 {
			query.Limit = defaultMergedLimit
		}

		log := logger.WithRequest(c)
		log.Infof("Buscando coordenadas mescladas: limit=%d, skip=%d", query.Limit, query.Skip)

		ocurrences, err := h.service.FindWithCoordinates(c.Context(), &query)
		if err != nil {
			h.HandleResponse(c, nil, common.ConvertMongoError(err))
			return nil
		}

		total, err := h.service.CountWithCoordinates(c.Context(), &query)
		if err != nil {
			h.HandleResponse(c, nil, common.ConvertMongoError(err))
			return nil
		}

		log.Infof("Retornando %d ocorrências mescladas de um total de %d", len(ocurrences), total)

		h.HandleResponse(c, dto.OcurrenceListResponse{
			Total: total,
			Count: len(ocurrences),
			Data:  ocurrences,
		}, nil)
		return nil
	})
}

// Stats retorna os contadores de cobertura da collection mesclada
func (h *MergedOcurrenceHandler) Stats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		stats, err := h.service.Stats(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, common.ConvertMongoError(err))
			return nil
		}
		h.HandleResponse(c, stats, nil)
		return nil
	})
}
