package services

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/ml"
)

// featureOrder é a ordem das colunas usada no treinamento. O vetor de entrada
// da floresta precisa reproduzi-la exatamente.
var featureOrder = []string{
	"aeronave_tipo_operacao",
	"fator_area",
	"aeronave_tipo_veiculo",
	"aeronave_ano_fabricacao",
	"ocorrencia_uf",
	"aeronave_fatalidades_total",
}

// categoricalFeatures são as features que passam pelos label encoders antes de
// entrar na floresta. As demais são numéricas e entram como estão.
var categoricalFeatures = map[string]struct{}{
	"aeronave_tipo_operacao": {},
	"fator_area":             {},
	"aeronave_tipo_veiculo":  {},
	"ocorrencia_uf":          {},
}

// hiddenEncoderClasses são classes internas dos encoders que não devem ser
// oferecidas como opção de formulário
var hiddenEncoderClasses = map[string]struct{}{
	"<NA>": {},
	"***":  {},
}

// PredictService mantém o modelo e os encoders carregados e executa a
// inferência de nível de dano. É construído uma única vez na subida do
// servidor e injetado nos handlers; os artefatos vêm do disco e nunca são
// relidos por requisição.
type PredictService struct {
	forest        *ml.Forest
	labelEncoders map[string]*ml.LabelEncoder
	targetEncoder *ml.LabelEncoder
}

// NewPredictService carrega os três artefatos do modelo. A falha de qualquer
// um deles é um erro de construção: o servidor decide se sobe sem o serviço.
func NewPredictService(cfg *config.Configuration) (*PredictService, error) {
	forest, err := ml.LoadForest(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrap(err, "carregando floresta")
	}

	labelEncoders, err := ml.LoadLabelEncoders(cfg.LabelEncodersPath)
	if err != nil {
		return nil, errors.Wrap(err, "carregando encoders das features")
	}

	targetEncoder, err := ml.LoadLabelEncoder(cfg.TargetEncoderPath)
	if err != nil {
		return nil, errors.Wrap(err, "carregando encoder do alvo")
	}

	for _, feature := range featureOrder {
		if _, categorical := categoricalFeatures[feature]; !categorical {
			continue
		}
		if _, ok := labelEncoders[feature]; !ok {
			return nil, errors.Errorf("artefato de encoders não contém a feature %s", feature)
		}
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"trees":   len(forest.Trees),
		"classes": forest.NumClasses,
	}).Info("Modelo de nível de dano carregado")

	return &PredictService{
		forest:        forest,
		labelEncoders: labelEncoders,
		targetEncoder: targetEncoder,
	}, nil
}

// featureVector monta o vetor de entrada na ordem do treinamento, codificando
// as features categóricas. Um valor categórico nunca visto é um erro de
// entrada do cliente, não uma falha do servidor.
func (s *PredictService) featureVector(req *dto.PredictionRequest) ([]float64, error) {
	raw := map[string]interface{}{
		"aeronave_tipo_operacao":     req.AeronaveTipoOperacao,
		"fator_area":                 req.FatorArea,
		"aeronave_tipo_veiculo":      req.AeronaveTipoVeiculo,
		"aeronave_ano_fabricacao":    float64(req.AeronaveAnoFabricacao),
		"ocorrencia_uf":              req.OcorrenciaUF,
		"aeronave_fatalidades_total": float64(req.AeronaveFatalidadesTotal),
	}

	vector := make([]float64, 0, len(featureOrder))
	for _, feature := range featureOrder {
		if _, categorical := categoricalFeatures[feature]; categorical {
			idx, err := s.labelEncoders[feature].Transform(raw[feature].(string))
			if err != nil {
				return nil, common.NewError(
					common.ErrCodeUnknownCategory,
					"Categoria desconhecida para "+feature,
					common.StatusBadRequest,
					err,
				)
			}
			vector = append(vector, float64(idx))
			continue
		}
		vector = append(vector, raw[feature].(float64))
	}
	return vector, nil
}

// Predict executa a inferência: codifica a entrada, avalia a floresta e
// decodifica a classe prevista de volta para o rótulo original
func (s *PredictService) Predict(req *dto.PredictionRequest) (*dto.PredictionResponse, error) {
	vector, err := s.featureVector(req)
	if err != nil {
		return nil, err
	}

	classIdx, confidence, err := s.forest.Predict(vector)
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Erro ao avaliar a floresta")
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	label, err := s.targetEncoder.InverseTransform(classIdx)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	return &dto.PredictionResponse{
		Prediction: label,
		Confidence: confidence,
	}, nil
}

// ModelInfo descreve o modelo carregado, para diagnóstico
func (s *PredictService) ModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"trees":          len(s.forest.Trees),
		"classes":        s.targetEncoder.Classes,
		"features":       featureOrder,
		"encoded_fields": len(s.labelEncoders),
	}
}

// FormOptions expõe as classes conhecidas de cada feature categórica, para o
// cliente montar formulários com valores que o modelo aceita. Classes internas
// dos encoders ficam de fora.
func (s *PredictService) FormOptions() map[string][]string {
	options := make(map[string][]string, len(s.labelEncoders))
	for feature, encoder := range s.labelEncoders {
		classes := make([]string, 0, len(encoder.Classes))
		for _, class := range encoder.Classes {
			if _, hidden := hiddenEncoderClasses[class]; hidden {
				continue
			}
			classes = append(classes, class)
		}
		sort.Strings(classes)
		options[feature] = classes
	}
	return options
}
