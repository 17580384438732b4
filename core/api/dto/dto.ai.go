package dto

// PredictionRequest são as seis features do classificador de nível de dano,
// na forma bruta (categóricas como texto, numéricas como número)
type PredictionRequest struct {
	AeronaveTipoOperacao     string `json:"aeronave_tipo_operacao" validate:"required,max=200"`
	FatorArea                string `json:"fator_area" validate:"required,max=200"`
	AeronaveTipoVeiculo      string `json:"aeronave_tipo_veiculo" validate:"required,max=200"`
	AeronaveAnoFabricacao    int    `json:"aeronave_ano_fabricacao" validate:"required,min=1900,max=2100"`
	OcorrenciaUF             string `json:"ocorrencia_uf" validate:"required,max=100"`
	AeronaveFatalidadesTotal int    `json:"aeronave_fatalidades_total" validate:"min=0"`
}

// PredictionResponse é o resultado da inferência: o rótulo decodificado e a
// probabilidade da classe prevista
type PredictionResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}
