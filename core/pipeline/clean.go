package pipeline

import (
	"strings"

	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/pipeline/frame"
)

// joinSuffixes são os sufixos de desambiguação aplicados pelos left joins
var joinSuffixes = []string{"_aeronave", "_tipo", "_fator", "_rec"}

// Clean remove as colunas duplicadas geradas pelos joins: uma coluna sufixada
// só cai quando a coluna original (sem o sufixo) também existe no resultado.
// A canonização de sentinelas para nulo acontece na montagem dos documentos,
// não aqui.
func Clean(f *frame.Frame) *frame.Frame {
	log := logger.GetPipelineLogger()

	var toDrop []string
	for _, col := range f.Columns {
		for _, suffix := range joinSuffixes {
			if !strings.HasSuffix(col, suffix) {
				continue
			}
			base := strings.TrimSuffix(col, suffix)
			if f.HasColumn(base) {
				toDrop = append(toDrop, col)
			}
			break
		}
	}

	if len(toDrop) > 0 {
		f = f.DropColumns(toDrop...)
		log.Infof("Removidas %d colunas duplicadas", len(toDrop))
	}

	log.Infof("Dados limpos: %d registros", f.Len())
	return f
}
