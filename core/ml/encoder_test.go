package ml

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLabelEncoderTransformEInverso(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"DESTRUÍDA", "LEVE", "NENHUM", "SUBSTANCIAL"}}

	idx, err := enc.Transform("LEVE")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if idx != 1 {
		t.Errorf("Transform(LEVE) = %d, esperado 1", idx)
	}

	label, err := enc.InverseTransform(idx)
	if err != nil {
		t.Fatalf("InverseTransform: %v", err)
	}
	if label != "LEVE" {
		t.Errorf("InverseTransform(1) = %q", label)
	}
}

func TestLabelEncoderValorNuncaVistoEhErro(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"AVIÃO", "HELICÓPTERO"}}
	if _, err := enc.Transform("PLANADOR"); err == nil {
		t.Fatal("valor nunca visto deveria ser erro, não predição silenciosa")
	}
}

func TestLabelEncoderInverseForaDoIntervalo(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"A"}}
	if _, err := enc.InverseTransform(5); err == nil {
		t.Error("índice fora do intervalo deveria ser erro")
	}
	if _, err := enc.InverseTransform(-1); err == nil {
		t.Error("índice negativo deveria ser erro")
	}
}

func TestLoadLabelEncoders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "label_encoders.json")
	artifact := `{
		"ocorrencia_uf": {"classes": ["MG", "RJ", "SP"]},
		"fator_area": {"classes": ["FATOR HUMANO", "FATOR OPERACIONAL"]}
	}`
	if err := os.WriteFile(path, []byte(artifact), 0644); err != nil {
		t.Fatal(err)
	}

	encoders, err := LoadLabelEncoders(path)
	if err != nil {
		t.Fatalf("LoadLabelEncoders: %v", err)
	}
	if len(encoders) != 2 {
		t.Fatalf("esperado 2 encoders, obteve %d", len(encoders))
	}

	idx, err := encoders["ocorrencia_uf"].Transform("SP")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if idx != 2 {
		t.Errorf("Transform(SP) = %d, esperado 2", idx)
	}
}

func TestLoadLabelEncodersArquivoAusente(t *testing.T) {
	if _, err := LoadLabelEncoders(filepath.Join(t.TempDir(), "nao_existe.json")); err == nil {
		t.Fatal("artefato ausente deveria ser erro")
	}
}
