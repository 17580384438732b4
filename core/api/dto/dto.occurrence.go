package dto

// CoordinatesQuery são os parâmetros de paginação do endpoint de coordenadas da
// collection bruta `ocorrencia`
type CoordinatesQuery struct {
	Limit int64 `query:"limit" validate:"omitempty,min=1,max=5000"` // Máximo de registros retornados
	Skip  int64 `query:"skip" validate:"omitempty,min=0"`           // Registros pulados (paginação)
}

// MergedCoordinatesQuery são os parâmetros do endpoint de coordenadas da
// collection desnormalizada, com o conjunto opcional de filtros
type MergedCoordinatesQuery struct {
	Limit int64 `query:"limit" validate:"omitempty,min=1,max=20000"`
	Skip  int64 `query:"skip" validate:"omitempty,min=0"`

	// Filtros da ocorrência
	UF            string `query:"uf" validate:"omitempty,max=100"`
	Cidade        string `query:"cidade" validate:"omitempty,max=200"`
	Classificacao string `query:"classificacao" validate:"omitempty,max=200"`
	Pais          string `query:"pais" validate:"omitempty,max=200"`
	DataInicio    string `query:"data_inicio" validate:"omitempty,datetime=2006-01-02"` // Início do intervalo (ocorrencia_dia)
	DataFim       string `query:"data_fim" validate:"omitempty,datetime=2006-01-02"`    // Fim do intervalo (ocorrencia_dia)

	// Filtros da aeronave (disponíveis apenas na collection desnormalizada)
	Fabricante  string `query:"fabricante" validate:"omitempty,max=200"`
	TipoVeiculo string `query:"tipo_veiculo" validate:"omitempty,max=200"`
	NivelDano   string `query:"nivel_dano" validate:"omitempty,max=200"`
}

// OcurrenceListResponse é a resposta paginada dos endpoints de listagem:
// total de registros que satisfazem o filtro + a página retornada
type OcurrenceListResponse struct {
	Total int64       `json:"total"` // Total de registros com coordenadas válidas
	Count int         `json:"count"` // Registros nesta página
	Data  interface{} `json:"data"`  // Página de registros
}

// FilterOptionsResponse é a resposta do endpoint de opções de filtro
type FilterOptionsResponse struct {
	FilterOptions map[string][]string    `json:"filter_options"`
	Metadata      map[string]interface{} `json:"metadata"`
}
