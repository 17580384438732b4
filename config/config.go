package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration contém as informações estáticas necessárias para rodar a aplicação.
// Todos os valores vêm de variáveis de ambiente (arquivo .env em desenvolvimento).
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:":8000"`      // Endereço do servidor HTTP
	Environment string `env:"GO_ENV" envDefault:"development"` // Ambiente de execução (development/production)
	Debug       bool   `env:"DEBUG" envDefault:"false"`        // Modo debug (expõe detalhes de erro nas respostas)
	APIToken    string `env:"API_TOKEN,required"`              // Token estático de acesso aos endpoints de IA
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`     // Origins permitidos, separados por vírgula (* = todos)

	// MongoDB
	MongoDBURI        string `env:"MONGODB_URI,required"`                   // URI de conexão (mongodb://host:porta)
	MongoDBName       string `env:"MONGODB_DB" envDefault:"dataplane"`      // Nome do banco de dados
	MongoDBUsername   string `env:"MONGODB_USERNAME"`                       // Usuário (opcional)
	MongoDBPassword   string `env:"MONGODB_PASSWORD"`                       // Senha (opcional)
	MongoDBAuthSource string `env:"MONGODB_AUTH_SOURCE" envDefault:"admin"` // Banco de autenticação

	// Rate limit
	RateLimitMax     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Máximo de requests por janela (0 = desabilitado)
	RateLimitWindow  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Janela em segundos
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Liga/desliga o rate limit

	// Artefatos do modelo de IA
	ModelPath         string `env:"AI_MODEL_PATH" envDefault:"model/checkpoint/random_forest_model.json"`          // Floresta serializada em JSON
	LabelEncodersPath string `env:"AI_LABEL_ENCODERS_PATH" envDefault:"model/label_encoders/label_encoders.json"`  // Encoders das features categóricas
	TargetEncoderPath string `env:"AI_TARGET_ENCODER_PATH" envDefault:"model/target_encoders/target_encoder.json"` // Encoder do alvo

	// Datasets de entrada do pipeline batch
	DatasetsPath string `env:"DATASETS_PATH" envDefault:"datasets"` // Diretório com os CSVs do CENIPA
}

// MongoDBConnectionString monta a string de conexão completa, incluindo credenciais
// e authSource quando usuário/senha estão configurados.
func (c *Configuration) MongoDBConnectionString() string {
	if c.MongoDBUsername != "" && c.MongoDBPassword != "" {
		base := strings.TrimPrefix(c.MongoDBURI, "mongodb://")
		return fmt.Sprintf("mongodb://%s:%s@%s/%s?authSource=%s",
			c.MongoDBUsername, c.MongoDBPassword, base, c.MongoDBName, c.MongoDBAuthSource)
	}
	return c.MongoDBURI
}

// getEnvPath retorna o caminho do arquivo .env de acordo com o ambiente.
// Procura o diretório config/env subindo a partir do diretório atual, para que
// os binários funcionem tanto a partir da raiz quanto de subdiretórios.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Não foi possível obter o diretório atual: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig carrega o arquivo .env (quando existente) e faz o parse das variáveis
// de ambiente para a struct Configuration.
//
// Retorna nil quando uma variável obrigatória está ausente; o chamador decide
// se aborta (servidor) ou mostra instruções (pipeline).
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Sem .env não é fatal: em produção as variáveis vêm do ambiente.
			fmt.Printf("Arquivo env não carregado (%s): %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Erro ao fazer parse da configuração: %+v\n", err)
		return nil
	}

	return &cfg
}
