package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
)

// APITokenMiddleware protege as rotas de inferência com o token estático da
// configuração. A verificação acontece antes de qualquer trabalho de modelo:
// requisição sem token ou com token errado responde 401 no envelope padrão e
// nunca chega ao handler.
func APITokenMiddleware(expectedToken string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Header Authorization ausente")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthToken, common.MsgTokenMissing, common.StatusUnauthorized, nil))
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthToken, common.MsgTokenInvalid, common.StatusUnauthorized, nil))
			return nil
		}

		// Comparação em tempo constante; igualdade exata, sem normalização
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expectedToken)) != 1 {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] API token inválido")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthToken, common.MsgTokenInvalid, common.StatusUnauthorized, nil))
			return nil
		}

		return c.Next()
	}
}
