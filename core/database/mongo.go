package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
)

// Nomes das collections usadas pela aplicação.
// As cinco primeiras espelham os CSVs de origem; a última é a collection
// desnormalizada produzida pelo pipeline.
const (
	ColOcorrencia         = "ocorrencia"
	ColAeronave           = "aeronave"
	ColOcorrenciaTipo     = "ocorrencia_tipo"
	ColFatorContribuinte  = "fator_contribuinte"
	ColRecomendacao       = "recomendacao"
	ColOcorrenciaCompleta = "ocorrencia_completa"
)

// MongoDB encapsula a conexão com o MongoDB com ciclo de vida explícito.
// A instância é construída uma vez no bootstrap e passada por referência a todos
// os componentes que precisam do banco, sem sessão global implícita.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	cfg      *config.Configuration
}

// NewMongoDB cria o handle (ainda sem conectar)
func NewMongoDB(cfg *config.Configuration) *MongoDB {
	return &MongoDB{cfg: cfg}
}

// Connect abre a conexão e valida com um ping.
// Falha de conectividade aqui é fatal para quem chama (startup).
func (m *MongoDB) Connect(ctx context.Context) error {
	connString := m.cfg.MongoDBConnectionString()

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"database": m.cfg.MongoDBName,
	}).Info("🔌 Conectando ao MongoDB...")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return common.NewError(common.ErrCodeDatabaseConnection,
			fmt.Sprintf("Erro ao conectar ao MongoDB: %v", err),
			common.StatusServiceUnavailable, nil)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Libera os recursos da conexão que falhou no ping.
		_ = client.Disconnect(context.Background())
		return common.NewError(common.ErrCodeDatabaseConnection,
			fmt.Sprintf("MongoDB não respondeu ao ping: %v", err),
			common.StatusServiceUnavailable, nil)
	}

	m.client = client
	m.database = client.Database(m.cfg.MongoDBName)

	log.Info("✅ Conexão com o MongoDB estabelecida")
	return nil
}

// Disconnect encerra a conexão. Seguro de chamar mesmo sem Connect prévio.
func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.database = nil
	if err != nil {
		return fmt.Errorf("erro ao desconectar do MongoDB: %w", err)
	}
	logger.GetAppLogger().Info("🔌 Conexão com o MongoDB encerrada")
	return nil
}

// Ping verifica a saúde da conexão (usado pelo health check)
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return common.NewError(common.ErrCodeDatabaseConnection,
			"Conexão com o MongoDB não inicializada", common.StatusServiceUnavailable, nil)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Collection retorna uma collection do banco configurado
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// WithConnection abre a conexão, executa fn e garante a desconexão em todos os
// caminhos de saída (padrão de aquisição com escopo usado pelo pipeline batch).
func (m *MongoDB) WithConnection(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := m.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Disconnect(disconnectCtx); err != nil {
			logger.GetAppLogger().WithError(err).Warn("Erro ao encerrar conexão com o MongoDB")
		}
	}()
	return fn(ctx)
}
