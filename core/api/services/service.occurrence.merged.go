package services

import (
	"context"
	"math"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CauanS29/DataPlane/core/api/dto"
	models "github.com/CauanS29/DataPlane/core/api/models/mongodb"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/utility"
)

// mergedNumericFields são os campos da collection mesclada que devem ser
// inteiros na resposta, ainda que a origem os tenha gravado como texto
var mergedNumericFields = []string{
	"total_recomendacoes",
	"total_aeronaves_envolvidas",
	"aeronave_pmd",
	"aeronave_pmd_categoria",
	"aeronave_assentos",
	"aeronave_ano_fabricacao",
	"aeronave_fatalidades_total",
}

// MergedOcurrenceService atende as leituras da collection denormalizada
// `ocorrencia_completa`, produzida pelo pipeline de mesclagem
type MergedOcurrenceService struct {
	collection *mongo.Collection
}

func NewMergedOcurrenceService(db *database.MongoDB) *MergedOcurrenceService {
	return &MergedOcurrenceService{
		collection: db.Collection(database.ColOcorrenciaCompleta),
	}
}

// buildFilter monta a query Mongo a partir dos filtros opcionais da requisição.
// Campos categóricos usam igualdade exata; cidade e fabricante aceitam busca
// parcial sem diferenciar maiúsculas; o intervalo de datas compara o texto ISO
// (YYYY-MM-DD) gravado em ocorrencia_dia.
func (s *MergedOcurrenceService) buildFilter(q *dto.MergedCoordinatesQuery) bson.M {
	filter := validCoordinatesFilter()

	if q == nil {
		return filter
	}
	if q.UF != "" {
		filter["ocorrencia_uf"] = q.UF
	}
	if q.Classificacao != "" {
		filter["ocorrencia_classificacao"] = q.Classificacao
	}
	if q.Pais != "" {
		filter["ocorrencia_pais"] = q.Pais
	}
	if q.TipoVeiculo != "" {
		filter["aeronave_tipo_veiculo"] = q.TipoVeiculo
	}
	if q.NivelDano != "" {
		filter["aeronave_nivel_dano"] = q.NivelDano
	}
	if q.Cidade != "" {
		filter["ocorrencia_cidade"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Cidade), Options: "i"}
	}
	if q.Fabricante != "" {
		filter["aeronave_fabricante"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Fabricante), Options: "i"}
	}
	if q.DataInicio != "" || q.DataFim != "" {
		dateRange := bson.M{}
		if q.DataInicio != "" {
			dateRange["$gte"] = q.DataInicio
		}
		if q.DataFim != "" {
			dateRange["$lte"] = q.DataFim
		}
		filter["ocorrencia_dia"] = dateRange
	}
	return filter
}

// FindWithCoordinates retorna uma página de ocorrências completas que
// satisfazem os filtros e têm coordenadas válidas. O pós-processamento
// converte coordenadas e campos numéricos gravados como texto e canoniza
// sentinelas para nulo; linhas irrecuperáveis são puladas com warning.
func (s *MergedOcurrenceService) FindWithCoordinates(ctx context.Context, q *dto.MergedCoordinatesQuery) ([]bson.M, error) {
	log := logger.GetAppLogger()

	filter := s.buildFilter(q)
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	log.WithFields(map[string]interface{}{
		"limit": q.Limit,
		"skip":  q.Skip,
	}).Info("Executando query na collection mesclada")

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar ocorrências mescladas")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.WithError(err).Error("Erro ao ler cursor da collection mesclada")
		return nil, err
	}

	ocurrences := make([]bson.M, 0, len(docs))
	invalid := 0
	for _, doc := range docs {
		if !s.normalizeRow(doc) {
			invalid++
			if invalid <= maxRowWarnings {
				log.Warnf("Erro ao processar ocorrência mesclada %v: coordenada inválida", doc["codigo_ocorrencia"])
			}
			continue
		}
		ocurrences = append(ocurrences, doc)
	}

	log.Infof("Processamento mesclado concluído. Válidos: %d, inválidos: %d", len(ocurrences), invalid)
	return ocurrences, nil
}

// normalizeRow converte coordenadas e campos numéricos no lugar e limpa os
// campos textuais. Retorna false quando a coordenada não pode ser usada.
func (s *MergedOcurrenceService) normalizeRow(doc bson.M) bool {
	lat, latOK := utility.ParseFloat(doc["ocorrencia_latitude"])
	lon, lonOK := utility.ParseFloat(doc["ocorrencia_longitude"])
	if !latOK || !lonOK || !utility.ValidCoordinates(lat, lon) {
		return false
	}
	doc["ocorrencia_latitude"] = lat
	doc["ocorrencia_longitude"] = lon

	for _, field := range mergedNumericFields {
		v, present := doc[field]
		if !present || v == nil {
			continue
		}
		if n, ok := utility.ParseInt(v); ok {
			doc[field] = n
		} else {
			doc[field] = nil
		}
	}

	for key, value := range doc {
		if str, ok := value.(string); ok {
			if cleaned := utility.CleanString(str); cleaned != nil {
				doc[key] = *cleaned
			} else {
				doc[key] = nil
			}
		}
	}
	return true
}

// CountWithCoordinates conta os documentos que satisfazem os filtros
func (s *MergedOcurrenceService) CountWithCoordinates(ctx context.Context, q *dto.MergedCoordinatesQuery) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, s.buildFilter(q))
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Erro ao contar ocorrências mescladas")
		return 0, err
	}
	return count, nil
}

// Stats retorna os contadores de cobertura da collection mesclada
func (s *MergedOcurrenceService) Stats(ctx context.Context) (*models.MergedStats, error) {
	log := logger.GetAppLogger()

	total, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Error("Erro ao contar documentos da collection mesclada")
		return nil, err
	}

	withCoords, err := s.collection.CountDocuments(ctx, bson.M{
		"ocorrencia_latitude":  bson.M{"$exists": true, "$ne": nil},
		"ocorrencia_longitude": bson.M{"$exists": true, "$ne": nil},
	})
	if err != nil {
		return nil, err
	}

	withAeronave, err := s.collection.CountDocuments(ctx, bson.M{
		"aeronave_matricula": bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
	})
	if err != nil {
		return nil, err
	}

	withRecomendacoes, err := s.collection.CountDocuments(ctx, bson.M{
		"recomendacao_numero": bson.M{"$exists": true, "$nin": bson.A{nil, ""}},
	})
	if err != nil {
		return nil, err
	}

	stats := &models.MergedStats{
		TotalOcorrencias: total,
		ComCoordenadas:   withCoords,
		ComDadosAeronave: withAeronave,
		ComRecomendacoes: withRecomendacoes,
	}
	if total > 0 {
		stats.PercentualCompleto = math.Round(float64(withAeronave)/float64(total)*100*100) / 100
	}
	return stats, nil
}
