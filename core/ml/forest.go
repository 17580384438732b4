package ml

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// leafMarker é o valor de feature que marca um nó folha no artefato
// (convenção herdada da exportação das árvores treinadas)
const leafMarker = -2

// TreeNode é um nó de árvore de decisão no formato achatado do artefato.
// Nós internos ramificam por `x[Feature] <= Threshold`; folhas carregam a
// contagem de amostras por classe vista no treinamento.
type TreeNode struct {
	Feature   int       `json:"feature"`   // Índice da feature, ou -2 em folhas
	Threshold float64   `json:"threshold"` // Limiar de decisão
	Left      int       `json:"left"`      // Filho para x[feature] <= threshold
	Right     int       `json:"right"`     // Filho para x[feature] > threshold
	Value     []float64 `json:"value"`     // Contagem por classe (apenas folhas)
}

// Tree é uma árvore de decisão individual da floresta
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// predictProba percorre a árvore e retorna a distribuição de probabilidade da
// folha alcançada (contagens normalizadas)
func (t *Tree) predictProba(features []float64) ([]float64, error) {
	if len(t.Nodes) == 0 {
		return nil, errors.New("árvore sem nós")
	}

	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Feature == leafMarker {
			return normalize(node.Value), nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return nil, errors.Errorf("nó referencia feature %d fora do vetor de entrada (%d)", node.Feature, len(features))
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, errors.Errorf("índice de nó %d fora da árvore (%d nós)", idx, len(t.Nodes))
		}
	}
}

// normalize converte contagens em distribuição de probabilidade
func normalize(counts []float64) []float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	probs := make([]float64, len(counts))
	if total == 0 {
		return probs
	}
	for i, c := range counts {
		probs[i] = c / total
	}
	return probs
}

// Forest é a floresta aleatória exportada para JSON a partir do checkpoint de
// treinamento. A predição tira a média das distribuições das árvores, reproduzindo o
// predict_proba do modelo original.
type Forest struct {
	NumClasses int    `json:"n_classes"`
	Trees      []Tree `json:"trees"`
}

// LoadForest carrega o artefato JSON da floresta
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lendo artefato do modelo %s", path)
	}

	forest := &Forest{}
	if err := json.Unmarshal(data, forest); err != nil {
		return nil, errors.Wrapf(err, "decodificando artefato do modelo %s", path)
	}
	if len(forest.Trees) == 0 {
		return nil, errors.Errorf("artefato do modelo %s não contém árvores", path)
	}
	return forest, nil
}

// PredictProba retorna a distribuição de probabilidade por classe para o vetor
// de features (média das distribuições das árvores)
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	sum := make([]float64, f.NumClasses)
	for i := range f.Trees {
		probs, err := f.Trees[i].predictProba(features)
		if err != nil {
			return nil, errors.Wrapf(err, "avaliando árvore %d", i)
		}
		if len(probs) != f.NumClasses {
			return nil, errors.Errorf("árvore %d retornou %d classes, esperado %d", i, len(probs), f.NumClasses)
		}
		for c, p := range probs {
			sum[c] += p
		}
	}

	n := float64(len(f.Trees))
	for c := range sum {
		sum[c] /= n
	}
	return sum, nil
}

// Predict retorna a classe mais provável e sua probabilidade
func (f *Forest) Predict(features []float64) (int, float64, error) {
	probs, err := f.PredictProba(features)
	if err != nil {
		return 0, 0, err
	}

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, probs[best], nil
}
