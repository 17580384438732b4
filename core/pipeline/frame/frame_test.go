package frame

import (
	"os"
	"path/filepath"
	"testing"
)

func mustAppend(t *testing.T, f *Frame, rows ...[]string) {
	t.Helper()
	for _, row := range rows {
		if err := f.Append(row); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
}

func TestGroupFirstMantemPrimeiraAeronave(t *testing.T) {
	f := New([]string{"codigo_ocorrencia2", "aeronave_matricula"})
	mustAppend(t, f,
		[]string{"K1", "PT-AAA"},
		[]string{"K1", "PT-BBB"},
		[]string{"K2", "PT-CCC"},
	)

	out, err := f.GroupFirst("codigo_ocorrencia2")
	if err != nil {
		t.Fatalf("GroupFirst: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("esperado 2 grupos, obteve %d", out.Len())
	}
	if got := out.Value(0, "aeronave_matricula"); got != "PT-AAA" {
		t.Errorf("primeira aeronave de K1 deveria vencer, obteve %q", got)
	}
	if got := out.Value(1, "aeronave_matricula"); got != "PT-CCC" {
		t.Errorf("aeronave de K2 = %q", got)
	}
}

func TestGroupConcatConcatenaDistintosNaOrdem(t *testing.T) {
	f := New([]string{"codigo_ocorrencia3", "fator_nome", "fator_area"})
	mustAppend(t, f,
		[]string{"K1", "ATITUDE", "FATOR HUMANO"},
		[]string{"K1", "INDISCIPLINA", "FATOR OPERACIONAL"},
		[]string{"K1", "ATITUDE", "FATOR HUMANO"}, // duplicata não repete
		[]string{"K2", "CLIMA", "FATOR OPERACIONAL"},
	)

	out, err := f.GroupConcat("codigo_ocorrencia3", "; ", nil)
	if err != nil {
		t.Fatalf("GroupConcat: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("esperado 2 grupos, obteve %d", out.Len())
	}
	if got := out.Value(0, "fator_area"); got != "FATOR HUMANO; FATOR OPERACIONAL" {
		t.Errorf("fator_area de K1 = %q", got)
	}
	if got := out.Value(0, "fator_nome"); got != "ATITUDE; INDISCIPLINA" {
		t.Errorf("fator_nome de K1 = %q", got)
	}
}

func TestGroupConcatSeparadorPorColuna(t *testing.T) {
	f := New([]string{"codigo_ocorrencia4", "recomendacao_numero", "recomendacao_conteudo"})
	mustAppend(t, f,
		[]string{"K1", "R-001", "Revisar procedimento; item 3"},
		[]string{"K1", "R-002", "Treinar tripulação"},
	)

	out, err := f.GroupConcat("codigo_ocorrencia4", "; ", map[string]string{
		"recomendacao_conteudo": " | ",
	})
	if err != nil {
		t.Fatalf("GroupConcat: %v", err)
	}
	if got := out.Value(0, "recomendacao_numero"); got != "R-001; R-002" {
		t.Errorf("recomendacao_numero = %q", got)
	}
	if got := out.Value(0, "recomendacao_conteudo"); got != "Revisar procedimento; item 3 | Treinar tripulação" {
		t.Errorf("recomendacao_conteudo = %q", got)
	}
}

func TestGroupConcatIgnoraSentinelas(t *testing.T) {
	f := New([]string{"codigo_ocorrencia1", "ocorrencia_tipo"})
	mustAppend(t, f,
		[]string{"K1", "FALHA DO MOTOR"},
		[]string{"K1", "***"},
		[]string{"K1", ""},
	)

	out, err := f.GroupConcat("codigo_ocorrencia1", "; ", nil)
	if err != nil {
		t.Fatalf("GroupConcat: %v", err)
	}
	if got := out.Value(0, "ocorrencia_tipo"); got != "FALHA DO MOTOR" {
		t.Errorf("sentinelas não deveriam entrar na concatenação, obteve %q", got)
	}
}

func TestLeftJoinPreservaLinhasESufixaColisoes(t *testing.T) {
	left := New([]string{"codigo_ocorrencia", "ocorrencia_uf", "aeronave_modelo"})
	mustAppend(t, left,
		[]string{"K1", "SP", "legado"},
		[]string{"K2", "RJ", "legado"},
		[]string{"K3", "MG", "legado"},
	)

	right := New([]string{"codigo_ocorrencia2", "aeronave_modelo"})
	mustAppend(t, right,
		[]string{"K1", "EMB-110"},
	)

	out, err := left.LeftJoin(right, "codigo_ocorrencia", "codigo_ocorrencia2", "_aeronave")
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}

	// Todas as linhas da esquerda sobrevivem, com ou sem par
	if out.Len() != left.Len() {
		t.Fatalf("left join alterou o número de linhas: %d != %d", out.Len(), left.Len())
	}

	// Colisão de nome recebe o sufixo; a coluna original fica intacta
	if !out.HasColumn("aeronave_modelo_aeronave") {
		t.Fatalf("coluna em colisão deveria receber sufixo, colunas: %v", out.Columns)
	}
	if got := out.Value(0, "aeronave_modelo"); got != "legado" {
		t.Errorf("coluna original sobrescrita: %q", got)
	}
	if got := out.Value(0, "aeronave_modelo_aeronave"); got != "EMB-110" {
		t.Errorf("valor da direita = %q", got)
	}

	// Linha sem par fica vazia nas colunas da direita
	if got := out.Value(1, "aeronave_modelo_aeronave"); got != "" {
		t.Errorf("linha sem par deveria ficar vazia, obteve %q", got)
	}
}

func TestLeftJoinMesmaChaveNaoDuplicaColuna(t *testing.T) {
	left := New([]string{"codigo_ocorrencia1", "ocorrencia_uf"})
	mustAppend(t, left, []string{"K1", "SP"})

	right := New([]string{"codigo_ocorrencia1", "ocorrencia_tipo"})
	mustAppend(t, right, []string{"K1", "FALHA DO MOTOR"})

	out, err := left.LeftJoin(right, "codigo_ocorrencia1", "codigo_ocorrencia1", "_tipo")
	if err != nil {
		t.Fatalf("LeftJoin: %v", err)
	}
	count := 0
	for _, col := range out.Columns {
		if col == "codigo_ocorrencia1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("chave de mesmo nome deveria aparecer uma vez, apareceu %d", count)
	}
	if got := out.Value(0, "ocorrencia_tipo"); got != "FALHA DO MOTOR" {
		t.Errorf("ocorrencia_tipo = %q", got)
	}
}

func TestDropColumns(t *testing.T) {
	f := New([]string{"a", "b", "c"})
	mustAppend(t, f, []string{"1", "2", "3"})

	out := f.DropColumns("b", "inexistente")
	if len(out.Columns) != 2 {
		t.Fatalf("colunas restantes: %v", out.Columns)
	}
	if out.Value(0, "a") != "1" || out.Value(0, "c") != "3" {
		t.Errorf("valores desalinhados após drop: %v", out.Rows[0])
	}
}

func TestNormalizeKeyRemoveSufixoDecimal(t *testing.T) {
	cases := map[string]string{
		"39687.0":  "39687",
		" 39687 ":  "39687",
		"39687":    "39687",
		"K1.0":     "K1.0", // não numérico mantém o sufixo
		".0":       ".0",
		"39687.00": "39687.00",
	}
	for in, want := range cases {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, esperado %q", in, got, want)
		}
	}
}

func TestReadCSVLatin1PontoEVirgula(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocorrencia.csv")

	// "SÃO PAULO" em Latin-1: Ã = 0xC3
	content := []byte("codigo_ocorrencia;ocorrencia_cidade ;ocorrencia_uf\n" +
		"39687.0;S\xC3O PAULO;SP\n" +
		"39688;RIO DE JANEIRO\n" + // campos a menos: pulada
		"39689;BELO HORIZONTE;MG\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	f, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("esperado 2 linhas válidas, obteve %d", f.Len())
	}
	if !f.HasColumn("ocorrencia_cidade") {
		t.Fatalf("cabeçalho deveria ser aparado, colunas: %v", f.Columns)
	}
	if got := f.Value(0, "ocorrencia_cidade"); got != "SÃO PAULO" {
		t.Errorf("decode Latin-1 falhou: %q", got)
	}
	if got := f.Value(0, "codigo_ocorrencia"); got != "39687" {
		t.Errorf("chave deveria ser normalizada: %q", got)
	}
}

func TestReadCSVArquivoAusenteDevolveFrameVazio(t *testing.T) {
	f, err := ReadCSV(filepath.Join(t.TempDir(), "nao_existe.csv"))
	if err != nil {
		t.Fatalf("arquivo ausente não deveria ser erro: %v", err)
	}
	if !f.Empty() {
		t.Errorf("esperado Frame vazio, obteve %d linhas", f.Len())
	}
}
