package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/pipeline/frame"
)

// Seed popula as collections brutas a partir dos CSVs: cada arquivo vira a
// collection de mesmo nome, truncada e recarregada. Cada documento recebe os
// metadados _source (arquivo de origem) e _seeded_at (instante da carga).
func Seed(ctx context.Context, db *database.MongoDB, datasetsPath string) error {
	log := logger.GetPipelineLogger()
	seededAt := time.Now().UTC().Format(time.RFC3339)

	for _, name := range sourceTables {
		csvPath := filepath.Join(datasetsPath, name+".csv")
		f, err := frame.ReadCSV(csvPath)
		if err != nil {
			return errors.Wrapf(err, "carregando %s", csvPath)
		}
		if f.Empty() {
			log.Warnf("Nenhum documento para inserir em %s", name)
			continue
		}

		docs := BuildDocuments(f)
		source := name + ".csv"
		for _, d := range docs {
			doc := d.(bson.M)
			doc["_source"] = source
			doc["_seeded_at"] = seededAt
		}

		collection := db.Collection(name)
		if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "limpando collection %s", name)
		}

		for start := 0; start < len(docs); start += batchSize {
			end := start + batchSize
			if end > len(docs) {
				end = len(docs)
			}
			if _, err := collection.InsertMany(ctx, docs[start:end]); err != nil {
				return errors.Wrapf(err, "inserindo lote na collection %s", name)
			}
		}

		// Índices dos metadados da carga, para consultar por origem e data
		metaIndexes := []mongo.IndexModel{
			{Keys: bson.D{{Key: "_source", Value: 1}}},
			{Keys: bson.D{{Key: "_seeded_at", Value: 1}}},
		}
		if _, err := collection.Indexes().CreateMany(ctx, metaIndexes); err != nil {
			return errors.Wrapf(err, "criando índices na collection %s", name)
		}

		log.Infof("Collection %s populada: %d documentos", name, len(docs))
	}
	return nil
}
