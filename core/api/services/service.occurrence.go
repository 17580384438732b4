package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/CauanS29/DataPlane/core/api/models/mongodb"
	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/utility"
)

// maxRowWarnings limita a quantidade de warnings de conversão por consulta,
// para não inundar o log quando a origem tem muitos registros malformados
const maxRowWarnings = 10

// OcurrenceService atende as leituras da collection bruta `ocorrencia`
type OcurrenceService struct {
	collection *mongo.Collection
}

// NewOcurrenceService cria o service a partir do handle explícito do banco
func NewOcurrenceService(db *database.MongoDB) *OcurrenceService {
	return &OcurrenceService{
		collection: db.Collection(database.ColOcorrencia),
	}
}

// validCoordinatesFilter é o predicado estrito de coordenadas válidas:
// presentes, não nulas, dentro dos intervalos e diferentes de (0,0).
// Das duas versões históricas do predicado, esta (a mais estrita) é a adotada
// em todo o sistema; ver DESIGN.md.
func validCoordinatesFilter() bson.M {
	return bson.M{
		"ocorrencia_latitude":  bson.M{"$exists": true, "$ne": nil},
		"ocorrencia_longitude": bson.M{"$exists": true, "$ne": nil},
		"$and": bson.A{
			bson.M{"ocorrencia_latitude": bson.M{"$gte": -90, "$lte": 90}},
			bson.M{"ocorrencia_longitude": bson.M{"$gte": -180, "$lte": 180}},
			bson.M{"ocorrencia_latitude": bson.M{"$ne": 0}},
			bson.M{"ocorrencia_longitude": bson.M{"$ne": 0}},
		},
	}
}

// FindWithCoordinates retorna uma página de ocorrências com coordenadas
// válidas. Registros cuja coordenada não converte para número, foge dos
// intervalos ou é exatamente (0,0) são pulados individualmente (com warnings
// limitados), sem abortar a consulta.
func (s *OcurrenceService) FindWithCoordinates(ctx context.Context, limit, skip int64) ([]models.OcorrenciaCoordinates, error) {
	log := logger.GetAppLogger()

	projection := bson.M{
		"codigo_ocorrencia":        1,
		"ocorrencia_latitude":      1,
		"ocorrencia_longitude":     1,
		"ocorrencia_cidade":        1,
		"ocorrencia_uf":            1,
		"ocorrencia_classificacao": 1,
		"ocorrencia_dia":           1,
		"_id":                      0,
	}

	opts := options.Find().
		SetProjection(projection).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, validCoordinatesFilter(), opts)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar ocorrências com coordenadas")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.WithError(err).Error("Erro ao ler cursor de ocorrências")
		return nil, err
	}

	ocurrences := make([]models.OcorrenciaCoordinates, 0, len(docs))
	invalid := 0
	for _, doc := range docs {
		lat, latOK := utility.ParseFloat(doc["ocorrencia_latitude"])
		lon, lonOK := utility.ParseFloat(doc["ocorrencia_longitude"])
		if !latOK || !lonOK || !utility.ValidCoordinates(lat, lon) {
			invalid++
			if invalid <= maxRowWarnings {
				log.Warnf("Erro ao processar ocorrência %v: coordenada inválida", doc["codigo_ocorrencia"])
			}
			continue
		}

		ocurrences = append(ocurrences, models.OcorrenciaCoordinates{
			CodigoOcorrencia: utility.ToString(doc["codigo_ocorrencia"]),
			Latitude:         lat,
			Longitude:        lon,
			Cidade:           utility.CleanString(doc["ocorrencia_cidade"]),
			UF:               utility.CleanString(doc["ocorrencia_uf"]),
			Classificacao:    utility.CleanString(doc["ocorrencia_classificacao"]),
			Dia:              utility.CleanString(doc["ocorrencia_dia"]),
		})
	}

	log.Infof("Encontradas %d ocorrências com coordenadas (%d inválidas puladas)", len(ocurrences), invalid)
	return ocurrences, nil
}

// CountWithCoordinates conta o total de ocorrências com coordenadas válidas
func (s *OcurrenceService) CountWithCoordinates(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, validCoordinatesFilter())
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Erro ao contar ocorrências com coordenadas")
		return 0, err
	}
	return count, nil
}
