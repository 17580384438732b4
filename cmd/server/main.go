package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/api/router"
	"github.com/CauanS29/DataPlane/core/api/services"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"

	"github.com/gofiber/fiber/v3"
)

// initLogger inicializa o sistema de logs da aplicação
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Falha ao inicializar o logger: %v", err))
	}
	logger.GetAppLogger().Info("Sistema de logs inicializado")
}

func main() {
	initLogger()
	log := logger.GetAppLogger()

	// Configuração (env + validação). Sem configuração válida não há servidor.
	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("Falha ao carregar a configuração do ambiente")
	}

	InitGlobal()

	// Banco de dados: a API é de leitura, sem banco não há o que servir
	db := database.NewMongoDB(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Connect(ctx); err != nil {
		cancel()
		log.WithError(err).Fatal("Falha ao conectar ao MongoDB")
	}
	cancel()
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Disconnect(disconnectCtx)
	}()

	// Serviço de inferência: a falha dos artefatos degrada as rotas de IA para
	// 503, mas não impede a API de leitura de subir
	predict, err := services.NewPredictService(cfg)
	if err != nil {
		log.WithError(err).Error("Falha ao carregar os artefatos do modelo; rotas de IA responderão indisponibilidade")
		predict = nil
	}

	app := InitFiberApp(cfg)
	router.RegisterRoutes(app, cfg, router.NewHandlers(db, predict))

	log.WithFields(map[string]interface{}{
		"address":     cfg.Address,
		"environment": cfg.Environment,
	}).Info("Iniciando servidor Fiber")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.WithError(err).Error("Erro no Listen do Fiber")
		os.Exit(1)
	}
}
