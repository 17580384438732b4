package ml

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LabelEncoder mapeia classes de texto para índices inteiros, na mesma ordem em
// que o encoder foi ajustado no treinamento. A transformação de um valor nunca
// visto é um erro explícito, nunca uma predição padrão silenciosa.
type LabelEncoder struct {
	Classes []string `json:"classes"`

	index map[string]int
}

// buildIndex monta o índice reverso classe → posição
func (e *LabelEncoder) buildIndex() {
	e.index = make(map[string]int, len(e.Classes))
	for i, class := range e.Classes {
		e.index[class] = i
	}
}

// Transform converte uma classe no índice aprendido no treinamento
func (e *LabelEncoder) Transform(value string) (int, error) {
	if e.index == nil {
		e.buildIndex()
	}
	idx, ok := e.index[value]
	if !ok {
		return 0, errors.Errorf("valor %q nunca visto no treinamento do encoder", value)
	}
	return idx, nil
}

// InverseTransform converte um índice de volta para a classe original
func (e *LabelEncoder) InverseTransform(idx int) (string, error) {
	if idx < 0 || idx >= len(e.Classes) {
		return "", errors.Errorf("índice %d fora do intervalo de classes do encoder (%d)", idx, len(e.Classes))
	}
	return e.Classes[idx], nil
}

// LoadLabelEncoders carrega o artefato JSON com os encoders das features
// categóricas: um objeto {feature: {"classes": [...]}}.
func LoadLabelEncoders(path string) (map[string]*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lendo artefato de encoders %s", path)
	}

	encoders := map[string]*LabelEncoder{}
	if err := json.Unmarshal(data, &encoders); err != nil {
		return nil, errors.Wrapf(err, "decodificando artefato de encoders %s", path)
	}

	for _, enc := range encoders {
		enc.buildIndex()
	}
	return encoders, nil
}

// LoadLabelEncoder carrega um único encoder (usado para o alvo)
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lendo artefato de encoder %s", path)
	}

	enc := &LabelEncoder{}
	if err := json.Unmarshal(data, enc); err != nil {
		return nil, errors.Wrapf(err, "decodificando artefato de encoder %s", path)
	}
	enc.buildIndex()
	return enc, nil
}
