package pipeline

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/pipeline/frame"
)

func buildFrame(t *testing.T, columns []string, rows ...[]string) *frame.Frame {
	t.Helper()
	f := frame.New(columns)
	for _, row := range rows {
		if err := f.Append(row); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return f
}

func testData(t *testing.T) map[string]*frame.Frame {
	t.Helper()
	return map[string]*frame.Frame{
		database.ColOcorrencia: buildFrame(t,
			[]string{"codigo_ocorrencia", "codigo_ocorrencia1", "codigo_ocorrencia3", "codigo_ocorrencia4", "ocorrencia_uf"},
			[]string{"K1", "K1", "K1", "K1", "SP"},
			[]string{"K2", "K2", "K2", "K2", "RJ"},
			[]string{"K3", "K3", "K3", "K3", "MG"},
		),
		database.ColAeronave: buildFrame(t,
			[]string{"codigo_ocorrencia2", "aeronave_matricula", "aeronave_fabricante"},
			[]string{"K1", "PT-AAA", "EMBRAER"},
			[]string{"K1", "PT-BBB", "CESSNA"}, // segunda aeronave de K1 é descartada
			[]string{"K2", "PT-CCC", "PIPER"},
		),
		database.ColOcorrenciaTipo: buildFrame(t,
			[]string{"codigo_ocorrencia1", "ocorrencia_tipo"},
			[]string{"K1", "FALHA DO MOTOR"},
			[]string{"K1", "POUSO FORÇADO"},
		),
		database.ColFatorContribuinte: buildFrame(t,
			[]string{"codigo_ocorrencia3", "fator_area"},
			[]string{"K1", "FATOR HUMANO"},
			[]string{"K1", "FATOR OPERACIONAL"},
			[]string{"K1", "FATOR HUMANO"},
		),
		database.ColRecomendacao: buildFrame(t,
			[]string{"codigo_ocorrencia4", "recomendacao_numero", "recomendacao_conteudo"},
			[]string{"K2", "R-001", "Revisar manutenção"},
			[]string{"K2", "R-002", "Treinar tripulação"},
		),
	}
}

func TestMergePreservaNumeroDeLinhasDaBase(t *testing.T) {
	merged, err := Merge(testData(t))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Len() != 3 {
		t.Fatalf("mesclagem deveria preservar as 3 ocorrências da base, obteve %d", merged.Len())
	}
}

func TestMergePrimeiraAeronaveVence(t *testing.T) {
	merged, err := Merge(testData(t))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.Value(0, "aeronave_matricula"); got != "PT-AAA" {
		t.Errorf("primeira aeronave de K1 deveria vencer, obteve %q", got)
	}
	if got := merged.Value(1, "aeronave_matricula"); got != "PT-CCC" {
		t.Errorf("aeronave de K2 = %q", got)
	}
	// K3 não tem aeronave: colunas vazias
	if got := merged.Value(2, "aeronave_matricula"); got != "" {
		t.Errorf("K3 sem aeronave deveria ficar vazio, obteve %q", got)
	}
}

func TestMergeConcatenaDetalhes(t *testing.T) {
	merged, err := Merge(testData(t))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.Value(0, "ocorrencia_tipo"); got != "FALHA DO MOTOR; POUSO FORÇADO" {
		t.Errorf("ocorrencia_tipo de K1 = %q", got)
	}
	if got := merged.Value(0, "fator_area"); got != "FATOR HUMANO; FATOR OPERACIONAL" {
		t.Errorf("fator_area de K1 = %q", got)
	}
	if got := merged.Value(1, "recomendacao_conteudo"); got != "Revisar manutenção | Treinar tripulação" {
		t.Errorf("recomendacao_conteudo de K2 = %q", got)
	}
}

func TestMergeDetalheVazioNaoAltaraBase(t *testing.T) {
	data := testData(t)
	data[database.ColRecomendacao] = frame.New(nil)
	data[database.ColFatorContribuinte] = frame.New(nil)

	merged, err := Merge(data)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Len() != 3 {
		t.Fatalf("base alterada: %d linhas", merged.Len())
	}
	if merged.HasColumn("recomendacao_numero") {
		t.Error("tabela vazia não deveria contribuir colunas")
	}
}

func TestMergeSemBaseFalha(t *testing.T) {
	data := testData(t)
	data[database.ColOcorrencia] = frame.New(nil)
	if _, err := Merge(data); err == nil {
		t.Fatal("mesclagem sem base deveria falhar")
	}
}

func TestCleanRemoveColunasDuplicadasDosJoins(t *testing.T) {
	f := buildFrame(t,
		[]string{"codigo_ocorrencia", "ocorrencia_uf", "ocorrencia_uf_aeronave", "aeronave_modelo", "fator_area"},
		[]string{"K1", "SP", "SP", "EMB-110", "FATOR HUMANO"},
	)

	out := Clean(f)
	if out.HasColumn("ocorrencia_uf_aeronave") {
		t.Error("coluna duplicada do join deveria cair")
	}
	// Sufixo sem coluna base correspondente fica
	if !out.HasColumn("fator_area") || !out.HasColumn("aeronave_modelo") {
		t.Errorf("colunas legítimas removidas: %v", out.Columns)
	}
}

func TestBuildDocumentsInfereTiposPorColuna(t *testing.T) {
	f := buildFrame(t,
		[]string{"codigo_ocorrencia", "ocorrencia_latitude", "aeronave_assentos", "ocorrencia_cidade"},
		[]string{"1001", "-23.55", "10", "SÃO PAULO"},
		[]string{"1002", "-9.87", "***", "BELÉM"},
		[]string{"1003", "", "4", "***"},
	)

	docs := BuildDocuments(f)
	if len(docs) != 3 {
		t.Fatalf("esperado 3 documentos, obteve %d", len(docs))
	}

	first := docs[0].(bson.M)
	if lat, ok := first["ocorrencia_latitude"].(float64); !ok || lat != -23.55 {
		t.Errorf("latitude deveria ser float64, obteve %T %v", first["ocorrencia_latitude"], first["ocorrencia_latitude"])
	}
	if n, ok := first["aeronave_assentos"].(int64); !ok || n != 10 {
		t.Errorf("assentos deveria ser int64, obteve %T %v", first["aeronave_assentos"], first["aeronave_assentos"])
	}

	second := docs[1].(bson.M)
	if second["aeronave_assentos"] != nil {
		t.Errorf("sentinela deveria virar nulo, obteve %v", second["aeronave_assentos"])
	}

	third := docs[2].(bson.M)
	if third["ocorrencia_latitude"] != nil {
		t.Errorf("célula vazia deveria virar nulo, obteve %v", third["ocorrencia_latitude"])
	}
	if third["ocorrencia_cidade"] != nil {
		t.Errorf("*** deveria virar nulo, obteve %v", third["ocorrencia_cidade"])
	}
}

func TestBuildDocumentsCodigoOcorrenciaFicaTexto(t *testing.T) {
	f := buildFrame(t,
		[]string{"codigo_ocorrencia", "codigo_ocorrencia2", "aeronave_assentos"},
		[]string{"39687", "39687", "10"},
		[]string{"40001", "40001", "4"},
	)

	docs := BuildDocuments(f)
	for i, d := range docs {
		doc := d.(bson.M)
		for _, col := range []string{"codigo_ocorrencia", "codigo_ocorrencia2"} {
			if _, ok := doc[col].(string); !ok {
				t.Errorf("linha %d: %s deveria ser texto mesmo com valores numéricos, obteve %T %v",
					i, col, doc[col], doc[col])
			}
		}
		// As demais colunas continuam com a inferência numérica normal
		if _, ok := doc["aeronave_assentos"].(int64); !ok {
			t.Errorf("linha %d: assentos deveria ser int64, obteve %T", i, doc["aeronave_assentos"])
		}
	}

	first := docs[0].(bson.M)
	if first["codigo_ocorrencia"] != "39687" {
		t.Errorf("código deveria preservar o texto original, obteve %v", first["codigo_ocorrencia"])
	}
}

func TestBuildDocumentsColunaMistaFicaTexto(t *testing.T) {
	f := buildFrame(t,
		[]string{"ocorrencia_aerodromo"},
		[]string{"9999"},
		[]string{"SBSP"},
	)

	docs := BuildDocuments(f)
	for i, d := range docs {
		doc := d.(bson.M)
		if _, ok := doc["ocorrencia_aerodromo"].(string); !ok {
			t.Errorf("linha %d: coluna mista deveria ser texto, obteve %T", i, doc["ocorrencia_aerodromo"])
		}
	}
}
