package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig contém a configuração do sistema de logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"both"`

	// Rotação de arquivos
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Quantidade de arquivos antigos mantidos
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // Dias de retenção
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"` // Comprime arquivos antigos

	// Caminhos
	LogPath      string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile      string `env:"LOG_APP_FILE" envDefault:"app.log"`
	PipelineFile string `env:"LOG_PIPELINE_FILE" envDefault:"pipeline.log"`
}

// DefaultConfig retorna a configuração padrão, ajustada pelo ambiente e
// sobrescrita pelas variáveis de ambiente quando presentes.
func DefaultConfig() *LogConfig {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	cfg := &LogConfig{
		Level:        "info",
		Format:       "text",
		Output:       "both",
		MaxSize:      100,
		MaxBackups:   7,
		MaxAge:       7,
		Compress:     true,
		LogPath:      "./logs",
		AppFile:      "app.log",
		PipelineFile: "pipeline.log",
	}

	if environment == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	} else {
		cfg.Level = "info"
		cfg.Format = "json"
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = strings.ToLower(output)
	}

	if maxSizeStr := os.Getenv("LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			cfg.MaxSize = maxSize
		}
	}
	if maxBackupsStr := os.Getenv("LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			cfg.MaxBackups = maxBackups
		}
	}
	if maxAgeStr := os.Getenv("LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			cfg.MaxAge = maxAge
		}
	}
	if compressStr := os.Getenv("LOG_COMPRESS"); compressStr != "" {
		if compress, err := strconv.ParseBool(compressStr); err == nil {
			cfg.Compress = compress
		}
	}

	if logPath := os.Getenv("LOG_PATH"); logPath != "" {
		cfg.LogPath = logPath
	}
	if appFile := os.Getenv("LOG_APP_FILE"); appFile != "" {
		cfg.AppFile = appFile
	}
	if pipelineFile := os.Getenv("LOG_PIPELINE_FILE"); pipelineFile != "" {
		cfg.PipelineFile = pipelineFile
	}

	return cfg
}
