// Package commands implements the infera CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inferadev/infera/internal/logger"
	"github.com/inferadev/infera/pkg/api/v1/client"
	"github.com/inferadev/infera/pkg/api/v1/routes"
)

// flag names
const (
	flagBaseURL = "base-url"
	flagToken   = "token"
)

// environment variable names
const (
	envBaseURL = "INFERA_BASE_URL"
	envToken   = "INFERA_API_TOKEN"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// baseURL holds the target API address. Flag parsing sets this.
	baseURL string
	// apiToken holds the bearer credential.
	apiToken string
)

// initClient initializes the API client
func initClient() error {
	opts := client.DefaultOptions()
	opts.BaseURL = baseURL
	opts.Token = apiToken

	var err error
	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&baseURL, flagBaseURL, "u", routes.DefaultBaseURL, "Address of the Infera API (env: INFERA_BASE_URL)")
	RootCmd.PersistentFlags().StringVarP(&apiToken, flagToken, "t", "", "API token (env: INFERA_API_TOKEN)")

	RootCmd.AddCommand(predictionsCmd)
	RootCmd.AddCommand(trainingsCmd)
	RootCmd.AddCommand(modelsCmd)
	RootCmd.AddCommand(filesCmd)
	RootCmd.AddCommand(webhooksCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "infera",
	Short: "Infera CLI - A command line interface for the Infera API",
	Long: `Infera CLI is a command line tool for running and inspecting predictions,
trainings, and files on the Infera inference platform.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// A .env file, when present, supplies credentials for local use.
		_ = godotenv.Load()
		logger.Initialize()

		// Precedence for each setting: flag > env var > default.
		if !cmd.Flags().Changed(flagBaseURL) {
			if envAddr := os.Getenv(envBaseURL); envAddr != "" {
				baseURL = envAddr
			}
		}
		if !cmd.Flags().Changed(flagToken) {
			if envTok := os.Getenv(envToken); envTok != "" {
				apiToken = envTok
			}
		}

		if baseURL == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
