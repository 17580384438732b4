package pipeline

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/CauanS29/DataPlane/core/database"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/pipeline/frame"
)

// Tabelas de origem e suas chaves de junção com a tabela base.
// Os nomes de arquivo espelham os nomes das collections.
var sourceTables = []string{
	database.ColOcorrencia,
	database.ColAeronave,
	database.ColOcorrenciaTipo,
	database.ColFatorContribuinte,
	database.ColRecomendacao,
}

// LoadFrames carrega os cinco CSVs do diretório de datasets. Arquivo ausente
// vira Frame vazio (a mesclagem correspondente é pulada), não erro.
func LoadFrames(datasetsPath string) (map[string]*frame.Frame, error) {
	logger.GetPipelineLogger().Infof("Carregando arquivos CSV de %s", datasetsPath)

	data := make(map[string]*frame.Frame, len(sourceTables))
	for _, name := range sourceTables {
		f, err := frame.ReadCSV(filepath.Join(datasetsPath, name+".csv"))
		if err != nil {
			return nil, errors.Wrapf(err, "carregando tabela %s", name)
		}
		data[name] = f
	}
	return data, nil
}

// Merge mescla as cinco tabelas na estrutura desnormalizada, com a tabela de
// ocorrências como base. Cada tabela de detalhe é agregada por código de
// ocorrência antes do left join, então o número de linhas da base é invariante
// em todas as etapas.
func Merge(data map[string]*frame.Frame) (*frame.Frame, error) {
	log := logger.GetPipelineLogger()

	merged := data[database.ColOcorrencia]
	if merged == nil || merged.Empty() {
		return nil, errors.New("tabela base de ocorrências vazia ou ausente")
	}
	baseRows := merged.Len()
	log.Infof("Base: %d ocorrências", baseRows)

	// Aeronaves: 1:N reduzido para a primeira aeronave de cada ocorrência
	if aeronave := data[database.ColAeronave]; aeronave != nil && !aeronave.Empty() {
		first, err := aeronave.GroupFirst("codigo_ocorrencia2")
		if err != nil {
			return nil, errors.Wrap(err, "agrupando aeronaves")
		}
		merged, err = merged.LeftJoin(first, "codigo_ocorrencia", "codigo_ocorrencia2", "_aeronave")
		if err != nil {
			return nil, errors.Wrap(err, "mesclando aeronaves")
		}
		log.Infof("Mescladas %d aeronaves", first.Len())
	}

	// Tipos de ocorrência: valores distintos concatenados com "; "
	if tipos := data[database.ColOcorrenciaTipo]; tipos != nil && !tipos.Empty() {
		grouped, err := tipos.GroupConcat("codigo_ocorrencia1", "; ", nil)
		if err != nil {
			return nil, errors.Wrap(err, "agrupando tipos de ocorrência")
		}
		merged, err = merged.LeftJoin(grouped, "codigo_ocorrencia1", "codigo_ocorrencia1", "_tipo")
		if err != nil {
			return nil, errors.Wrap(err, "mesclando tipos de ocorrência")
		}
		log.Infof("Mesclados %d tipos de ocorrência", grouped.Len())
	}

	// Fatores contribuintes: valores distintos concatenados com "; "
	if fatores := data[database.ColFatorContribuinte]; fatores != nil && !fatores.Empty() {
		grouped, err := fatores.GroupConcat("codigo_ocorrencia3", "; ", nil)
		if err != nil {
			return nil, errors.Wrap(err, "agrupando fatores contribuintes")
		}
		merged, err = merged.LeftJoin(grouped, "codigo_ocorrencia3", "codigo_ocorrencia3", "_fator")
		if err != nil {
			return nil, errors.Wrap(err, "mesclando fatores contribuintes")
		}
		log.Infof("Mesclados %d fatores contribuintes", grouped.Len())
	}

	// Recomendações: o conteúdo usa " | " porque o texto livre pode conter ";"
	if recs := data[database.ColRecomendacao]; recs != nil && !recs.Empty() {
		grouped, err := recs.GroupConcat("codigo_ocorrencia4", "; ", map[string]string{
			"recomendacao_conteudo": " | ",
		})
		if err != nil {
			return nil, errors.Wrap(err, "agrupando recomendações")
		}
		merged, err = merged.LeftJoin(grouped, "codigo_ocorrencia4", "codigo_ocorrencia4", "_rec")
		if err != nil {
			return nil, errors.Wrap(err, "mesclando recomendações")
		}
		log.Infof("Mescladas %d recomendações", grouped.Len())
	}

	if merged.Len() != baseRows {
		return nil, errors.Errorf("mesclagem alterou o número de linhas: %d != %d", merged.Len(), baseRows)
	}

	log.Infof("Dados mesclados: %d registros finais", merged.Len())
	return merged, nil
}
