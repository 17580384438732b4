// Package frame implementa a tabela em memória usada pelo pipeline batch:
// leitura de CSV, agregações por chave e left join posicional. As operações
// cobrem exatamente o que a mesclagem das tabelas do CENIPA precisa; não é uma
// biblioteca genérica de dataframes.
package frame

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/utility"
)

// maxReadWarnings limita os warnings de linhas malformadas por arquivo
const maxReadWarnings = 10

// Frame é uma tabela retangular de texto: colunas nomeadas e linhas alinhadas
// posicionalmente com elas
type Frame struct {
	Columns []string
	Rows    [][]string

	colIndex map[string]int
}

// New cria um Frame vazio com as colunas dadas
func New(columns []string) *Frame {
	f := &Frame{Columns: columns}
	f.buildIndex()
	return f
}

func (f *Frame) buildIndex() {
	f.colIndex = make(map[string]int, len(f.Columns))
	for i, col := range f.Columns {
		f.colIndex[col] = i
	}
}

// Len retorna o número de linhas
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Empty informa se o Frame não tem linhas
func (f *Frame) Empty() bool {
	return len(f.Rows) == 0
}

// HasColumn informa se a coluna existe
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIndex[name]
	return ok
}

// Col retorna o índice da coluna, ou -1 se não existir
func (f *Frame) Col(name string) int {
	if idx, ok := f.colIndex[name]; ok {
		return idx
	}
	return -1
}

// Value retorna o valor de uma célula pelo nome da coluna ("" se não existir)
func (f *Frame) Value(row int, column string) string {
	idx := f.Col(column)
	if idx < 0 || row < 0 || row >= len(f.Rows) {
		return ""
	}
	return f.Rows[row][idx]
}

// Append adiciona uma linha, que deve ter o mesmo número de colunas
func (f *Frame) Append(row []string) error {
	if len(row) != len(f.Columns) {
		return errors.Errorf("linha com %d campos, esperado %d", len(row), len(f.Columns))
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// normalizeKey padroniza um valor de chave de junção: trim e remoção do
// sufixo decimal espúrio (colunas de código lidas como número viram "39687.0"
// em algumas exportações)
func normalizeKey(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, ".0") {
		base := v[:len(v)-2]
		if base != "" && isDigits(base) {
			return base
		}
	}
	return v
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ReadCSV carrega um CSV do CENIPA: separador ';', encoding Latin-1, cabeçalho
// com espaços aparados. Linhas com número errado de campos são puladas com
// warnings limitados. Arquivo ausente devolve um Frame vazio com warning, sem
// erro: o pipeline segue com as tabelas que existem.
func ReadCSV(path string) (*Frame, error) {
	log := logger.GetPipelineLogger()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Arquivo %s não encontrado", path)
			return New(nil), nil
		}
		return nil, errors.Wrapf(err, "abrindo %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			log.Warnf("Arquivo %s vazio", path)
			return New(nil), nil
		}
		return nil, errors.Wrapf(err, "lendo cabeçalho de %s", path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	f := New(header)

	// Colunas de código de ocorrência são chaves de junção e precisam da
	// normalização de texto
	keyCols := make([]int, 0, 4)
	for i, col := range header {
		if strings.HasPrefix(col, "codigo_ocorrencia") {
			keyCols = append(keyCols, i)
		}
	}

	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			if skipped <= maxReadWarnings {
				log.WithError(err).Warnf("Linha malformada em %s, pulando", path)
			}
			continue
		}
		if len(record) != len(header) {
			skipped++
			if skipped <= maxReadWarnings {
				log.Warnf("Linha com %d campos em %s (esperado %d), pulando", len(record), path, len(header))
			}
			continue
		}

		for _, idx := range keyCols {
			record[idx] = normalizeKey(record[idx])
		}
		f.Rows = append(f.Rows, record)
	}

	if skipped > 0 {
		log.Warnf("%d linhas puladas em %s", skipped, path)
	}
	log.Infof("Carregado %s: %d registros, %d colunas", path, f.Len(), len(f.Columns))
	return f, nil
}

// GroupFirst agrupa pelas chaves da coluna dada e mantém a primeira linha de
// cada grupo, na ordem de aparição
func (f *Frame) GroupFirst(keyColumn string) (*Frame, error) {
	keyIdx := f.Col(keyColumn)
	if keyIdx < 0 {
		return nil, errors.Errorf("coluna de chave %q não existe", keyColumn)
	}

	out := New(f.Columns)
	seen := make(map[string]struct{}, f.Len())
	for _, row := range f.Rows {
		key := row[keyIdx]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// GroupConcat agrupa pelas chaves da coluna dada e concatena, para cada outra
// coluna, os valores distintos na ordem de aparição. O separador padrão é
// "; "; separadores por coluna substituem o padrão. Valores sentinela não
// entram na concatenação.
func (f *Frame) GroupConcat(keyColumn string, defaultSep string, seps map[string]string) (*Frame, error) {
	keyIdx := f.Col(keyColumn)
	if keyIdx < 0 {
		return nil, errors.Errorf("coluna de chave %q não existe", keyColumn)
	}

	type group struct {
		values  []map[string]struct{} // Valores já vistos por coluna
		ordered [][]string            // Valores na ordem de aparição por coluna
	}

	order := make([]string, 0, f.Len())
	groups := make(map[string]*group, f.Len())

	for _, row := range f.Rows {
		key := row[keyIdx]
		g, ok := groups[key]
		if !ok {
			g = &group{
				values:  make([]map[string]struct{}, len(f.Columns)),
				ordered: make([][]string, len(f.Columns)),
			}
			for i := range g.values {
				g.values[i] = map[string]struct{}{}
			}
			groups[key] = g
			order = append(order, key)
		}

		for i, v := range row {
			if i == keyIdx {
				continue
			}
			v = strings.TrimSpace(v)
			if utility.IsSentinel(v) {
				continue
			}
			if _, dup := g.values[i][v]; dup {
				continue
			}
			g.values[i][v] = struct{}{}
			g.ordered[i] = append(g.ordered[i], v)
		}
	}

	out := New(f.Columns)
	for _, key := range order {
		g := groups[key]
		row := make([]string, len(f.Columns))
		row[keyIdx] = key
		for i, col := range f.Columns {
			if i == keyIdx {
				continue
			}
			sep := defaultSep
			if s, ok := seps[col]; ok {
				sep = s
			}
			row[i] = strings.Join(g.ordered[i], sep)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// LeftJoin junta o Frame da direita pela igualdade leftKey = rightKey,
// preservando todas as linhas da esquerda. Colunas da direita que colidem com
// nomes da esquerda recebem o sufixo; quando as chaves têm o mesmo nome a
// coluna de chave da direita é descartada. A direita deve ter chaves únicas
// (já agregada), então o número de linhas não muda.
func (f *Frame) LeftJoin(right *Frame, leftKey, rightKey, suffix string) (*Frame, error) {
	leftIdx := f.Col(leftKey)
	if leftIdx < 0 {
		return nil, errors.Errorf("coluna de chave %q não existe na esquerda", leftKey)
	}
	rightIdx := right.Col(rightKey)
	if rightIdx < 0 {
		return nil, errors.Errorf("coluna de chave %q não existe na direita", rightKey)
	}

	// Colunas da direita que entram no resultado
	rightCols := make([]int, 0, len(right.Columns))
	outColumns := append([]string{}, f.Columns...)
	for i, col := range right.Columns {
		if i == rightIdx && rightKey == leftKey {
			continue
		}
		name := col
		if f.HasColumn(name) {
			name += suffix
		}
		outColumns = append(outColumns, name)
		rightCols = append(rightCols, i)
	}

	// Índice da direita: primeira linha de cada chave vence
	rightByKey := make(map[string][]string, right.Len())
	for _, row := range right.Rows {
		key := row[rightIdx]
		if _, ok := rightByKey[key]; !ok {
			rightByKey[key] = row
		}
	}

	out := New(outColumns)
	for _, leftRow := range f.Rows {
		row := make([]string, 0, len(outColumns))
		row = append(row, leftRow...)

		rightRow, matched := rightByKey[leftRow[leftIdx]]
		for _, i := range rightCols {
			if matched {
				row = append(row, rightRow[i])
			} else {
				row = append(row, "")
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// DropColumns remove as colunas nomeadas (as inexistentes são ignoradas)
func (f *Frame) DropColumns(names ...string) *Frame {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	keep := make([]int, 0, len(f.Columns))
	outColumns := make([]string, 0, len(f.Columns))
	for i, col := range f.Columns {
		if _, d := drop[col]; d {
			continue
		}
		keep = append(keep, i)
		outColumns = append(outColumns, col)
	}

	out := New(outColumns)
	for _, row := range f.Rows {
		newRow := make([]string, len(keep))
		for j, i := range keep {
			newRow[j] = row[i]
		}
		out.Rows = append(out.Rows, newRow)
	}
	return out
}
