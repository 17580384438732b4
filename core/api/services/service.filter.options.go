package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/utility"
)

// defaultDistinctLimit é o teto de valores distintos por campo. Campos de alta
// cardinalidade têm tetos próprios em distinctLimits.
const defaultDistinctLimit = 1000

// filterCategories mapeia as categorias expostas pela API para os campos da
// collection mesclada
var filterCategories = map[string]string{
	"states":                     "ocorrencia_uf",
	"cities":                     "ocorrencia_cidade",
	"classifications":            "ocorrencia_classificacao",
	"countries":                  "ocorrencia_pais",
	"aerodromes":                 "ocorrencia_aerodromo",
	"aircraft_manufacturers":     "aeronave_fabricante",
	"aircraft_types":             "aeronave_tipo_veiculo",
	"aircraft_models":            "aeronave_modelo",
	"damage_levels":              "aeronave_nivel_dano",
	"aircraft_operators":         "aeronave_operador_categoria",
	"operation_phases":           "aeronave_fase_operacao",
	"operation_types":            "aeronave_tipo_operacao",
	"investigation_status":       "investigacao_status",
	"aircraft_released":          "investigacao_aeronave_liberada",
	"occurrence_types":           "ocorrencia_tipo",
	"occurrence_type_categories": "ocorrencia_tipo_categoria",
	"factor_names":               "fator_nome",
	"factor_aspects":             "fator_aspecto",
	"factor_areas":               "fator_area",
}

// categoryOrder fixa a ordem das categorias na resposta completa
var categoryOrder = []string{
	"states", "cities", "classifications", "countries", "aerodromes",
	"aircraft_manufacturers", "aircraft_types", "aircraft_models",
	"damage_levels", "aircraft_operators", "operation_phases",
	"operation_types", "investigation_status", "aircraft_released",
	"occurrence_types", "occurrence_type_categories",
	"factor_names", "factor_aspects", "factor_areas",
}

var distinctLimits = map[string]int{
	"ocorrencia_cidade":    500,
	"ocorrencia_aerodromo": 300,
	"aeronave_modelo":      200,
	"fator_nome":           200,
}

// FilterOptionsService descobre os valores distintos da collection mesclada
// para popular os filtros do cliente
type FilterOptionsService struct {
	collection *mongo.Collection
}

func NewFilterOptionsService(db *database.MongoDB) *FilterOptionsService {
	return &FilterOptionsService{
		collection: db.Collection(database.ColOcorrenciaCompleta),
	}
}

// DistinctValues retorna os valores únicos de um campo, limpos e ordenados.
// A falha por campo é degradada para lista vazia com warning: um campo ausente
// não derruba a montagem do conjunto completo de filtros.
func (s *FilterOptionsService) DistinctValues(ctx context.Context, field string, limit int) []string {
	log := logger.GetAppLogger()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{field: bson.M{"$exists": true, "$nin": bson.A{nil, ""}}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$" + field}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		log.WithError(err).Warnf("Erro ao buscar valores para %s", field)
		return []string{}
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		log.WithError(err).Warnf("Erro ao ler valores para %s", field)
		return []string{}
	}

	return cleanDistinct(results)
}

// cleanDistinct transforma o resultado do $group em uma lista de valores:
// sentinelas descartadas, duplicatas (após limpeza) removidas e ordem
// alfabética ascendente
func cleanDistinct(results []bson.M) []string {
	seen := make(map[string]struct{}, len(results))
	values := make([]string, 0, len(results))
	for _, result := range results {
		cleaned := utility.CleanString(result["_id"])
		if cleaned == nil {
			continue
		}
		if _, dup := seen[*cleaned]; dup {
			continue
		}
		seen[*cleaned] = struct{}{}
		values = append(values, *cleaned)
	}
	sort.Strings(values)
	return values
}

// AllOptions monta o conjunto completo de opções de filtro, uma categoria por
// vez, com metadados de contagem
func (s *FilterOptionsService) AllOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	log := logger.GetAppLogger()
	log.Info("Buscando todas as opções de filtros da collection mesclada")

	options := make(map[string][]string, len(filterCategories))
	totalOptions := 0
	for _, category := range categoryOrder {
		field := filterCategories[category]
		values := s.DistinctValues(ctx, field, s.limitFor(field))
		options[category] = values
		totalOptions += len(values)
	}

	log.Infof("Opções de filtros obtidas: %d valores únicos em %d campos", totalOptions, len(options))

	return &dto.FilterOptionsResponse{
		FilterOptions: options,
		Metadata: map[string]interface{}{
			"total_unique_options": totalOptions,
			"fields_available":     len(options),
			"data_source":          database.ColOcorrenciaCompleta,
			"note":                 "Valores limpos e ordenados alfabeticamente",
		},
	}, nil
}

// OptionsByCategory retorna os valores de uma única categoria. Categoria
// desconhecida devolve lista vazia, sem erro.
func (s *FilterOptionsService) OptionsByCategory(ctx context.Context, category string) []string {
	field, ok := filterCategories[category]
	if !ok {
		logger.GetAppLogger().Warnf("Categoria de filtro não encontrada: %s", category)
		return []string{}
	}
	return s.DistinctValues(ctx, field, s.limitFor(field))
}

func (s *FilterOptionsService) limitFor(field string) int {
	if limit, ok := distinctLimits[field]; ok {
		return limit
	}
	return defaultDistinctLimit
}
