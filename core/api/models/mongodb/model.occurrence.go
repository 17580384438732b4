package models

// OcorrenciaCoordinates é a projeção enxuta da collection `ocorrencia` usada no
// endpoint de coordenadas. As coordenadas já chegam convertidas para float64
// pelo service (a origem pode armazená-las como texto).
type OcorrenciaCoordinates struct {
	CodigoOcorrencia string  `json:"codigo_ocorrencia" bson:"codigo_ocorrencia"`
	Latitude         float64 `json:"ocorrencia_latitude" bson:"ocorrencia_latitude"`
	Longitude        float64 `json:"ocorrencia_longitude" bson:"ocorrencia_longitude"`
	Cidade           *string `json:"ocorrencia_cidade,omitempty" bson:"ocorrencia_cidade,omitempty"`
	UF               *string `json:"ocorrencia_uf,omitempty" bson:"ocorrencia_uf,omitempty"`
	Classificacao    *string `json:"ocorrencia_classificacao,omitempty" bson:"ocorrencia_classificacao,omitempty"`
	Dia              *string `json:"ocorrencia_dia,omitempty" bson:"ocorrencia_dia,omitempty"`
}
