package pipeline

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	models "github.com/CauanS29/DataPlane/core/api/models/mongodb"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/pipeline/frame"
	"github.com/CauanS29/DataPlane/core/utility"
)

// batchSize é o tamanho dos lotes de inserção
const batchSize = 1000

// Tipos inferidos por coluna na montagem dos documentos
type columnType int

const (
	colString columnType = iota
	colInt
	colFloat
)

// occurrenceCodePrefix identifica as colunas de código de ocorrência, que são
// identificadores e ficam como texto mesmo quando todos os valores parecem
// numéricos
const occurrenceCodePrefix = "codigo_ocorrencia"

// inferColumnTypes decide o tipo BSON de cada coluna olhando todos os valores
// não sentinela: inteiro se todos convertem para inteiro, float se todos
// convertem para float (decimal com ponto), texto caso contrário. A inferência
// é por coluna, não por célula, para o tipo ser uniforme na collection.
func inferColumnTypes(f *frame.Frame) []columnType {
	types := make([]columnType, len(f.Columns))
	for i := range types {
		if strings.HasPrefix(f.Columns[i], occurrenceCodePrefix) {
			types[i] = colString
			continue
		}

		types[i] = colInt
		sawValue := false

		for _, row := range f.Rows {
			v := strings.TrimSpace(row[i])
			if utility.IsSentinel(v) {
				continue
			}
			sawValue = true

			if types[i] == colInt {
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					continue
				}
				types[i] = colFloat
			}
			if types[i] == colFloat {
				if _, err := strconv.ParseFloat(v, 64); err == nil {
					continue
				}
				types[i] = colString
			}
			break
		}

		if !sawValue {
			types[i] = colString
		}
	}
	return types
}

// BuildDocuments converte o Frame em documentos BSON: sentinelas viram nulo e
// colunas numéricas recebem o tipo inferido
func BuildDocuments(f *frame.Frame) []interface{} {
	types := inferColumnTypes(f)

	docs := make([]interface{}, 0, f.Len())
	for _, row := range f.Rows {
		doc := make(bson.M, len(f.Columns))
		for i, col := range f.Columns {
			v := strings.TrimSpace(row[i])
			if utility.IsSentinel(v) {
				doc[col] = nil
				continue
			}

			switch types[i] {
			case colInt:
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					doc[col] = v
					continue
				}
				doc[col] = n
			case colFloat:
				fv, err := strconv.ParseFloat(v, 64)
				if err != nil {
					doc[col] = v
					continue
				}
				doc[col] = fv
			default:
				doc[col] = v
			}
		}
		docs = append(docs, doc)
	}
	return docs
}

// BulkLoad substitui o conteúdo da collection desnormalizada: trunca, insere
// em lotes e garante os índices declarados no model. A carga não é atômica; a
// collection fica parcialmente vazia durante a troca.
func BulkLoad(ctx context.Context, db *database.MongoDB, f *frame.Frame) error {
	log := logger.GetPipelineLogger()
	collection := db.Collection(database.ColOcorrenciaCompleta)

	log.Infof("Limpando collection %s", database.ColOcorrenciaCompleta)
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "limpando collection")
	}

	docs := BuildDocuments(f)
	log.Infof("Inserindo %d registros em lotes de %d", len(docs), batchSize)

	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if _, err := collection.InsertMany(ctx, docs[start:end]); err != nil {
			return errors.Wrapf(err, "inserindo lote %d", start/batchSize+1)
		}
	}

	log.Info("Criando índices")
	if err := database.CreateIndexes(ctx, collection, models.OcorrenciaCompleta{}); err != nil {
		return errors.Wrap(err, "criando índices")
	}

	log.Infof("Collection %s carregada: %d registros", database.ColOcorrenciaCompleta, len(docs))
	return nil
}
