package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inferadev/infera/pkg/types"
)

// Prediction flag names
const (
	flagPredictionID = "id"
	flagVersion      = "version"
	flagModel        = "model"
	flagInputJSON    = "input"
	flagWebhook      = "webhook"
	flagCursor       = "cursor"
	flagStream       = "stream"
)

// predictionOutput represents the filtered output for a prediction
type predictionOutput struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Model     string      `json:"model,omitempty"`
	Version   string      `json:"version,omitempty"`
	Output    interface{} `json:"output,omitempty"`
	Error     string      `json:"error,omitempty"`
	Logs      string      `json:"logs,omitempty"`
	Created   string      `json:"created_at,omitempty"`
	Completed string      `json:"completed_at,omitempty"`
}

func newPredictionOutput(p *types.Prediction) predictionOutput {
	return predictionOutput{
		ID:        p.ID,
		Status:    p.Status.String(),
		Model:     p.Model,
		Version:   p.Version,
		Output:    p.Output,
		Error:     p.Error,
		Logs:      p.Logs,
		Created:   p.CreatedAt,
		Completed: p.CompletedAt,
	}
}

func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

func init() {
	predictionsCmd.AddCommand(createPredictionCmd)
	predictionsCmd.AddCommand(getPredictionCmd)
	predictionsCmd.AddCommand(listPredictionsCmd)
	predictionsCmd.AddCommand(cancelPredictionCmd)
	predictionsCmd.AddCommand(waitPredictionCmd)
	predictionsCmd.AddCommand(streamPredictionCmd)

	// Add flags for create
	createPredictionCmd.Flags().StringP(flagVersion, "v", "", "Model version ID")
	createPredictionCmd.Flags().StringP(flagModel, "m", "", "Model reference (owner/name) for the versionless path")
	createPredictionCmd.Flags().StringP(flagInputJSON, "i", "{}", "Prediction input as a JSON object")
	createPredictionCmd.Flags().String(flagWebhook, "", "Webhook URL to notify on status changes")
	createPredictionCmd.Flags().Bool(flagStream, false, "Request a stream URL for live output")

	// Add flags for get / cancel / wait / stream
	getPredictionCmd.Flags().StringP(flagPredictionID, "i", "", "Prediction ID")
	_ = getPredictionCmd.MarkFlagRequired(flagPredictionID)
	cancelPredictionCmd.Flags().StringP(flagPredictionID, "i", "", "Prediction ID")
	_ = cancelPredictionCmd.MarkFlagRequired(flagPredictionID)
	waitPredictionCmd.Flags().StringP(flagPredictionID, "i", "", "Prediction ID")
	_ = waitPredictionCmd.MarkFlagRequired(flagPredictionID)
	streamPredictionCmd.Flags().StringP(flagPredictionID, "i", "", "Prediction ID")
	_ = streamPredictionCmd.MarkFlagRequired(flagPredictionID)

	// Add flags for list
	listPredictionsCmd.Flags().String(flagCursor, "", "Pagination cursor from a previous page")
}

var predictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "Manage predictions",
}

var createPredictionCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a prediction",
	RunE: func(cmd *cobra.Command, _ []string) error {
		version, _ := cmd.Flags().GetString(flagVersion)
		model, _ := cmd.Flags().GetString(flagModel)
		inputJSON, _ := cmd.Flags().GetString(flagInputJSON)
		webhook, _ := cmd.Flags().GetString(flagWebhook)
		stream, _ := cmd.Flags().GetBool(flagStream)

		if version == "" && model == "" {
			return fmt.Errorf("either --%s or --%s is required", flagVersion, flagModel)
		}

		var input types.PredictionInput
		if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
			return fmt.Errorf("error parsing input JSON: %w", err)
		}

		req := types.PredictionRequest{
			Version: version,
			Input:   input,
			Webhook: webhook,
			Stream:  stream,
		}

		var prediction *types.Prediction
		var err error
		if version != "" {
			prediction, err = apiClient.CreatePrediction(context.Background(), req)
		} else {
			ref, refErr := types.ParseRef(model)
			if refErr != nil {
				return refErr
			}
			prediction, err = apiClient.CreatePredictionForModel(context.Background(), ref.Owner, ref.Name, req)
		}
		if err != nil {
			return fmt.Errorf("error creating prediction: %w", err)
		}

		return printJSON(newPredictionOutput(prediction))
	},
}

var getPredictionCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific prediction by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagPredictionID)

		prediction, err := apiClient.GetPrediction(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting prediction: %w", err)
		}

		return printJSON(newPredictionOutput(prediction))
	},
}

var listPredictionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List predictions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cursor, _ := cmd.Flags().GetString(flagCursor)

		page, err := apiClient.ListPredictions(context.Background(), cursor)
		if err != nil {
			return fmt.Errorf("error listing predictions: %w", err)
		}

		outputs := make([]predictionOutput, 0, len(page.Results))
		for i := range page.Results {
			outputs = append(outputs, newPredictionOutput(&page.Results[i]))
		}
		return printJSON(struct {
			Predictions []predictionOutput `json:"predictions"`
			Next        string             `json:"next,omitempty"`
		}{outputs, page.Next})
	},
}

var cancelPredictionCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Request cancellation of a running prediction",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagPredictionID)

		if err := apiClient.CancelPrediction(context.Background(), id); err != nil {
			return fmt.Errorf("error canceling prediction: %w", err)
		}

		fmt.Printf("Cancellation requested for prediction %s\n", id)
		return nil
	},
}

var waitPredictionCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until a prediction reaches a terminal status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagPredictionID)

		prediction, err := apiClient.GetPrediction(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting prediction: %w", err)
		}

		terminal, err := apiClient.Wait(context.Background(), prediction)
		if err != nil {
			return fmt.Errorf("error waiting for prediction: %w", err)
		}

		return printJSON(newPredictionOutput(terminal))
	},
}

var streamPredictionCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream a prediction's live output events",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagPredictionID)

		prediction, err := apiClient.GetPrediction(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting prediction: %w", err)
		}

		stream, err := apiClient.StreamPrediction(context.Background(), prediction)
		if err != nil {
			return fmt.Errorf("error opening stream: %w", err)
		}
		defer func() { _ = stream.Close() }()

		for {
			ev, err := stream.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error reading stream: %w", err)
			}
			fmt.Fprintf(os.Stdout, "%s: %s\n", ev.Type, ev.Data)
		}
	},
}
