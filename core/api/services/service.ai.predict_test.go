package services

import (
	"errors"
	"testing"

	"github.com/CauanS29/DataPlane/core/api/dto"
	"github.com/CauanS29/DataPlane/core/common"
	"github.com/CauanS29/DataPlane/core/ml"
)

// testPredictService monta um PredictService com artefatos em memória: uma
// floresta de uma árvore que decide pela feature de fatalidades (índice 5)
func testPredictService() *PredictService {
	forest := &ml.Forest{
		NumClasses: 2,
		Trees: []ml.Tree{
			{Nodes: []ml.TreeNode{
				{Feature: 5, Threshold: 0.5, Left: 1, Right: 2},
				{Feature: -2, Value: []float64{8, 2}},
				{Feature: -2, Value: []float64{1, 9}},
			}},
		},
	}
	return &PredictService{
		forest: forest,
		labelEncoders: map[string]*ml.LabelEncoder{
			"aeronave_tipo_operacao": {Classes: []string{"INSTRUÇÃO", "PRIVADA", "REGULAR"}},
			"fator_area":             {Classes: []string{"<NA>", "FATOR HUMANO", "FATOR OPERACIONAL"}},
			"aeronave_tipo_veiculo":  {Classes: []string{"AVIÃO", "HELICÓPTERO"}},
			"ocorrencia_uf":          {Classes: []string{"MG", "RJ", "SP"}},
		},
		targetEncoder: &ml.LabelEncoder{Classes: []string{"LEVE", "SUBSTANCIAL"}},
	}
}

func validRequest() *dto.PredictionRequest {
	return &dto.PredictionRequest{
		AeronaveTipoOperacao:     "PRIVADA",
		FatorArea:                "FATOR HUMANO",
		AeronaveTipoVeiculo:      "AVIÃO",
		AeronaveAnoFabricacao:    1998,
		OcorrenciaUF:             "SP",
		AeronaveFatalidadesTotal: 0,
	}
}

func TestPredictDecodificaClasse(t *testing.T) {
	svc := testPredictService()

	resp, err := svc.Predict(validRequest())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// Sem fatalidades a árvore cai na folha [8, 2]: classe 0 = LEVE
	if resp.Prediction != "LEVE" {
		t.Errorf("Prediction = %q, esperado LEVE", resp.Prediction)
	}
	if resp.Confidence != 0.8 {
		t.Errorf("Confidence = %v, esperado 0.8", resp.Confidence)
	}

	req := validRequest()
	req.AeronaveFatalidadesTotal = 3
	resp, err = svc.Predict(req)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resp.Prediction != "SUBSTANCIAL" {
		t.Errorf("Prediction = %q, esperado SUBSTANCIAL", resp.Prediction)
	}
}

func TestPredictCategoriaDesconhecidaEhErroDeEntrada(t *testing.T) {
	svc := testPredictService()

	req := validRequest()
	req.OcorrenciaUF = "XX"

	_, err := svc.Predict(req)
	if err == nil {
		t.Fatal("categoria desconhecida deveria ser erro")
	}

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("esperado erro tipado da aplicação, obteve %T", err)
	}
	if appErr.Code.Code != common.ErrCodeUnknownCategory.Code {
		t.Errorf("código = %s, esperado %s", appErr.Code.Code, common.ErrCodeUnknownCategory.Code)
	}
	if appErr.StatusCode != common.StatusBadRequest {
		t.Errorf("status = %d, esperado 400 (erro do cliente, não do servidor)", appErr.StatusCode)
	}
}

func TestFeatureVectorSegueOrdemDoTreinamento(t *testing.T) {
	svc := testPredictService()

	vector, err := svc.featureVector(validRequest())
	if err != nil {
		t.Fatalf("featureVector: %v", err)
	}
	// [PRIVADA=1, FATOR HUMANO=1, AVIÃO=0, 1998, SP=2, 0]
	want := []float64{1, 1, 0, 1998, 2, 0}
	if len(vector) != len(want) {
		t.Fatalf("vetor com %d posições, esperado %d", len(vector), len(want))
	}
	for i := range want {
		if vector[i] != want[i] {
			t.Errorf("posição %d = %v, esperado %v", i, vector[i], want[i])
		}
	}
}

func TestFormOptionsEscondeClassesInternas(t *testing.T) {
	svc := testPredictService()

	options := svc.FormOptions()
	if len(options) != 4 {
		t.Fatalf("esperado 4 features, obteve %d", len(options))
	}
	for _, class := range options["fator_area"] {
		if class == "<NA>" || class == "***" {
			t.Errorf("classe interna %q não deveria ser oferecida", class)
		}
	}
	if len(options["fator_area"]) != 2 {
		t.Errorf("fator_area deveria ter 2 opções visíveis, obteve %v", options["fator_area"])
	}
}
