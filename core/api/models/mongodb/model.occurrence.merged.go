package models

// OcorrenciaCompleta é o documento desnormalizado da collection
// `ocorrencia_completa`: uma linha da tabela primária com os dados das quatro
// tabelas de detalhe já achatados pelo pipeline (primeira aeronave; tipos,
// fatores e recomendações concatenados com "; ").
//
// As tags `index` declaram os índices reconstruídos pelo Bulk Loader ao fim de
// cada execução do pipeline.
type OcorrenciaCompleta struct {
	// Dados da ocorrência
	CodigoOcorrencia string   `json:"codigo_ocorrencia" bson:"codigo_ocorrencia" index:"unique"`
	Latitude         *float64 `json:"ocorrencia_latitude,omitempty" bson:"ocorrencia_latitude,omitempty" index:"compound:ocorrencia_geo_idx"`
	Longitude        *float64 `json:"ocorrencia_longitude,omitempty" bson:"ocorrencia_longitude,omitempty" index:"compound:ocorrencia_geo_idx"`
	Cidade           *string  `json:"ocorrencia_cidade,omitempty" bson:"ocorrencia_cidade,omitempty"`
	UF               *string  `json:"ocorrencia_uf,omitempty" bson:"ocorrencia_uf,omitempty"`
	Pais             *string  `json:"ocorrencia_pais,omitempty" bson:"ocorrencia_pais,omitempty"`
	Aerodromo        *string  `json:"ocorrencia_aerodromo,omitempty" bson:"ocorrencia_aerodromo,omitempty"`
	Classificacao    *string  `json:"ocorrencia_classificacao,omitempty" bson:"ocorrencia_classificacao,omitempty" index:"single"`
	Dia              *string  `json:"ocorrencia_dia,omitempty" bson:"ocorrencia_dia,omitempty"`
	Hora             *string  `json:"ocorrencia_hora,omitempty" bson:"ocorrencia_hora,omitempty"`
	SaidaPista       *string  `json:"ocorrencia_saida_pista,omitempty" bson:"ocorrencia_saida_pista,omitempty"`

	// Investigação e divulgação
	InvestigacaoAeronaveLiberada *string `json:"investigacao_aeronave_liberada,omitempty" bson:"investigacao_aeronave_liberada,omitempty"`
	InvestigacaoStatus           *string `json:"investigacao_status,omitempty" bson:"investigacao_status,omitempty"`
	DivulgacaoRelatorioNumero    *string `json:"divulgacao_relatorio_numero,omitempty" bson:"divulgacao_relatorio_numero,omitempty"`
	DivulgacaoRelatorioPublicado *string `json:"divulgacao_relatorio_publicado,omitempty" bson:"divulgacao_relatorio_publicado,omitempty"`
	DivulgacaoDiaPublicacao      *string `json:"divulgacao_dia_publicacao,omitempty" bson:"divulgacao_dia_publicacao,omitempty"`
	TotalRecomendacoes           *int    `json:"total_recomendacoes,omitempty" bson:"total_recomendacoes,omitempty"`
	TotalAeronavesEnvolvidas     *int    `json:"total_aeronaves_envolvidas,omitempty" bson:"total_aeronaves_envolvidas,omitempty"`

	// Dados da aeronave (primeira aeronave da ocorrência)
	AeronaveMatricula         *string `json:"aeronave_matricula,omitempty" bson:"aeronave_matricula,omitempty"`
	AeronaveOperadorCategoria *string `json:"aeronave_operador_categoria,omitempty" bson:"aeronave_operador_categoria,omitempty"`
	AeronaveTipoVeiculo       *string `json:"aeronave_tipo_veiculo,omitempty" bson:"aeronave_tipo_veiculo,omitempty"`
	AeronaveFabricante        *string `json:"aeronave_fabricante,omitempty" bson:"aeronave_fabricante,omitempty" index:"single"`
	AeronaveModelo            *string `json:"aeronave_modelo,omitempty" bson:"aeronave_modelo,omitempty"`
	AeronaveTipoICAO          *string `json:"aeronave_tipo_icao,omitempty" bson:"aeronave_tipo_icao,omitempty"`
	AeronaveMotorTipo         *string `json:"aeronave_motor_tipo,omitempty" bson:"aeronave_motor_tipo,omitempty"`
	AeronaveMotorQuantidade   *string `json:"aeronave_motor_quantidade,omitempty" bson:"aeronave_motor_quantidade,omitempty"`
	AeronavePMD               *int    `json:"aeronave_pmd,omitempty" bson:"aeronave_pmd,omitempty"`
	AeronavePMDCategoria      *int    `json:"aeronave_pmd_categoria,omitempty" bson:"aeronave_pmd_categoria,omitempty"`
	AeronaveAssentos          *int    `json:"aeronave_assentos,omitempty" bson:"aeronave_assentos,omitempty"`
	AeronaveAnoFabricacao     *int    `json:"aeronave_ano_fabricacao,omitempty" bson:"aeronave_ano_fabricacao,omitempty"`
	AeronavePaisFabricante    *string `json:"aeronave_pais_fabricante,omitempty" bson:"aeronave_pais_fabricante,omitempty"`
	AeronavePaisRegistro      *string `json:"aeronave_pais_registro,omitempty" bson:"aeronave_pais_registro,omitempty"`
	AeronaveRegistroCategoria *string `json:"aeronave_registro_categoria,omitempty" bson:"aeronave_registro_categoria,omitempty"`
	AeronaveRegistroSegmento  *string `json:"aeronave_registro_segmento,omitempty" bson:"aeronave_registro_segmento,omitempty"`
	AeronaveVooOrigem         *string `json:"aeronave_voo_origem,omitempty" bson:"aeronave_voo_origem,omitempty"`
	AeronaveVooDestino        *string `json:"aeronave_voo_destino,omitempty" bson:"aeronave_voo_destino,omitempty"`
	AeronaveFaseOperacao      *string `json:"aeronave_fase_operacao,omitempty" bson:"aeronave_fase_operacao,omitempty"`
	AeronaveTipoOperacao      *string `json:"aeronave_tipo_operacao,omitempty" bson:"aeronave_tipo_operacao,omitempty"`
	AeronaveNivelDano         *string `json:"aeronave_nivel_dano,omitempty" bson:"aeronave_nivel_dano,omitempty"`
	AeronaveFatalidadesTotal  *int    `json:"aeronave_fatalidades_total,omitempty" bson:"aeronave_fatalidades_total,omitempty"`

	// Tipos de ocorrência (valores distintos concatenados com "; ")
	OcorrenciaTipo          *string `json:"ocorrencia_tipo,omitempty" bson:"ocorrencia_tipo,omitempty"`
	OcorrenciaTipoCategoria *string `json:"ocorrencia_tipo_categoria,omitempty" bson:"ocorrencia_tipo_categoria,omitempty"`
	TaxonomiaTipoICAO       *string `json:"taxonomia_tipo_icao,omitempty" bson:"taxonomia_tipo_icao,omitempty"`

	// Fatores contribuintes (concatenados com "; ")
	FatorNome          *string `json:"fator_nome,omitempty" bson:"fator_nome,omitempty"`
	FatorAspecto       *string `json:"fator_aspecto,omitempty" bson:"fator_aspecto,omitempty"`
	FatorCondicionante *string `json:"fator_condicionante,omitempty" bson:"fator_condicionante,omitempty"`
	FatorArea          *string `json:"fator_area,omitempty" bson:"fator_area,omitempty"`

	// Recomendações (números/status com "; ", conteúdo com " | ")
	RecomendacaoNumero       *string `json:"recomendacao_numero,omitempty" bson:"recomendacao_numero,omitempty"`
	RecomendacaoConteudo     *string `json:"recomendacao_conteudo,omitempty" bson:"recomendacao_conteudo,omitempty"`
	RecomendacaoStatus       *string `json:"recomendacao_status,omitempty" bson:"recomendacao_status,omitempty"`
	RecomendacaoDestinatario *string `json:"recomendacao_destinatario,omitempty" bson:"recomendacao_destinatario,omitempty"`
}

// MergedStats são as estatísticas de cobertura da collection desnormalizada
type MergedStats struct {
	TotalOcorrencias   int64   `json:"total_ocorrencias" bson:"total_ocorrencias"`
	ComCoordenadas     int64   `json:"com_coordenadas" bson:"com_coordenadas"`
	ComDadosAeronave   int64   `json:"com_dados_aeronave" bson:"com_dados_aeronave"`
	ComRecomendacoes   int64   `json:"com_recomendacoes" bson:"com_recomendacoes"`
	PercentualCompleto float64 `json:"percentual_completo" bson:"percentual_completo"`
}
