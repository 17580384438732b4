// Package pipeline implementa o processo batch que transforma os CSVs do
// CENIPA na collection desnormalizada servida pela API: carga dos arquivos,
// mesclagem por código de ocorrência, limpeza e carga em lote no MongoDB.
package pipeline

import (
	"context"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
)

// Pipeline orquestra as etapas do processo batch sobre uma conexão de escopo
// próprio: o processo conecta, executa e desconecta, independente do servidor
// HTTP.
type Pipeline struct {
	cfg *config.Configuration
	db  *database.MongoDB
}

func New(cfg *config.Configuration) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		db:  database.NewMongoDB(cfg),
	}
}

// RunMerge executa o fluxo completo de mesclagem:
// CSVs → merge → clean → collection ocorrencia_completa
func (p *Pipeline) RunMerge(ctx context.Context) error {
	log := logger.GetPipelineLogger()
	log.Info("Iniciando criação da collection mesclada")

	data, err := LoadFrames(p.cfg.DatasetsPath)
	if err != nil {
		return err
	}

	merged, err := Merge(data)
	if err != nil {
		return err
	}

	cleaned := Clean(merged)

	err = p.db.WithConnection(ctx, func(ctx context.Context) error {
		return BulkLoad(ctx, p.db, cleaned)
	})
	if err != nil {
		return err
	}

	log.Infof("Collection mesclada criada com sucesso: %d registros", cleaned.Len())
	return nil
}

// RunSeed popula as collections brutas a partir dos CSVs
func (p *Pipeline) RunSeed(ctx context.Context) error {
	log := logger.GetPipelineLogger()
	log.Info("Iniciando seed das collections brutas")

	return p.db.WithConnection(ctx, func(ctx context.Context) error {
		return Seed(ctx, p.db, p.cfg.DatasetsPath)
	})
}
