package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/common"
)

// AIHandler atende as rotas de inferência do nível de dano. O PredictService é
// injetado já construído; quando os artefatos do modelo não subiram, o service
// é nil e as rotas respondem indisponibilidade em vez de derrubar a API.
type AIHandler struct {
	BaseHandler
	service *services.PredictService
}

func NewAIHandler(service *services.PredictService) *AIHandler {
	return &AIHandler{service: service}
}

// modelReady garante que o modelo está carregado antes de atender
func (h *AIHandler) modelReady(c fiber.Ctx) bool {
	if h.service != nil {
		return true
	}
	h.HandleResponse(c, nil, common.NewError(
		common.ErrCodeModelNotReady,
		common.MsgServiceUnavailable,
		common.StatusServiceUnavailable,
		nil,
	))
	return false
}

// Predict executa a inferência a partir das seis features da requisição
func (h *AIHandler) Predict(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if !h.modelReady(c) {
			return nil
		}

		var input dto.PredictionRequest
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prediction, err := h.service.Predict(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, prediction, nil)
		return nil
	})
}

// FormOptions retorna as classes aceitas por cada feature categórica
func (h *AIHandler) FormOptions(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if !h.modelReady(c) {
			return nil
		}
		h.HandleResponse(c, h.service.FormOptions(), nil)
		return nil
	})
}
