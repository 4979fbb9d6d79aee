package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moni-ai/moni-insight/internal/app"
	"github.com/moni-ai/moni-insight/pkg/config"
	"github.com/moni-ai/moni-insight/pkg/gcpauth"
	"github.com/moni-ai/moni-insight/pkg/gemini"
	"github.com/moni-ai/moni-insight/pkg/insight"
	"github.com/moni-ai/moni-insight/pkg/utils"
	"github.com/moni-ai/moni-insight/pkg/vertex"
	"github.com/moni-ai/moni-insight/pkg/vertex/discovery"
)

var (
	port    int
	cfg     string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "moni-insight",
	Short: "Moni Insight Server",
	Long:  "A web backend for document search, answer generation, and insight text over Google Cloud AI APIs",
	Run:   runServer,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	rootCmd.PersistentFlags().StringVarP(&cfg, "config", "c", "config.json", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Optional KEY=VALUE file applied to the environment before startup")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Bind flags to viper
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		log.Printf("Failed to bind port flag: %v", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		log.Printf("Failed to bind config flag: %v", err)
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		log.Printf("Failed to bind verbose flag: %v", err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	if verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if envFile != "" {
		vars, err := config.LoadEnvFile(envFile)
		if err != nil {
			log.Fatalf("Failed to load env file %s: %v", envFile, err)
		}
		applied := config.ApplyEnvVars(vars)
		log.Printf("[ENV] Applied %d environment variables from %s", len(applied), envFile)
	}

	configData, err := config.LoadConfig(cfg)
	if err != nil {
		log.Printf("Failed to load config from %s, using defaults: %v", cfg, err)
		configData = config.DefaultConfig()
	}
	if err := configData.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	apiKey, err := configData.GeminiAPIKey()
	if err != nil {
		log.Fatalf("Failed to read Gemini API key: %v", err)
	}

	provider := gcpauth.NewProvider(gcpauth.ADCSource{})
	httpClient := utils.NewHTTPClient(utils.HTTPClientConfig{Timeout: configData.HTTPTimeout()})
	apiClient := vertex.NewClientWithHTTPClient(provider, httpClient)

	discoveryClient, err := discovery.NewClient(apiClient, discovery.ClientConfig{
		ProjectID:  configData.ProjectID,
		Collection: configData.Collection,
		EngineID:   configData.EngineID,
	})
	if err != nil {
		log.Fatalf("Failed to create discovery client: %v", err)
	}

	geminiClient, err := gemini.NewClient(gemini.ClientConfig{
		APIKey:         apiKey,
		Model:          configData.Gemini.Model,
		EmbeddingModel: configData.Gemini.EmbeddingModel,
	})
	if err != nil {
		log.Fatalf("Failed to create gemini client: %v", err)
	}

	service := insight.NewService(discoveryClient, geminiClient, insight.ServiceConfig{
		Verbose: verbose,
	})

	server := app.NewServer(configData, service, discoveryClient, verbose)

	go func() {
		if err := server.Start(port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutdown signal received, shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
