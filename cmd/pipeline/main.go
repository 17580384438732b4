package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CauanS29/DataPlane/config"
	"github.com/CauanS29/DataPlane/core/logger"
	"github.com/CauanS29/DataPlane/core/pipeline"
)

var cfg *config.Configuration

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Pipeline batch dos dados de ocorrências aeronáuticas",
	Long: "Processo batch que popula o MongoDB a partir dos CSVs do CENIPA:\n" +
		"seed carrega as cinco tabelas brutas, merge produz a collection\n" +
		"desnormalizada ocorrencia_completa servida pela API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(nil); err != nil {
			return fmt.Errorf("inicializando logger: %w", err)
		}
		cfg = config.NewConfig()
		if cfg == nil {
			return fmt.Errorf("falha ao carregar a configuração do ambiente")
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Popula as collections brutas a partir dos CSVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.New(cfg).RunSeed(cmd.Context())
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Cria a collection desnormalizada ocorrencia_completa",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.New(cfg).RunMerge(cmd.Context())
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Executa seed e merge em sequência",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(cfg)
		if err := p.RunSeed(cmd.Context()); err != nil {
			return err
		}
		return p.RunMerge(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(allCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.GetPipelineLogger().WithError(err).Error("Pipeline encerrado com erro")
		os.Exit(1)
	}
}
