package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inferadev/infera/pkg/types"
)

// Training flag names
const (
	flagTrainingID  = "id"
	flagDestination = "destination"
)

// trainingOutput represents the filtered output for a training
type trainingOutput struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Model     string `json:"model,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
	Created   string `json:"created_at,omitempty"`
	Completed string `json:"completed_at,omitempty"`
}

func newTrainingOutput(t *types.Training) trainingOutput {
	return trainingOutput{
		ID:        t.ID,
		Status:    t.Status.String(),
		Model:     t.Model,
		Version:   t.Version,
		Error:     t.Error,
		Created:   t.CreatedAt,
		Completed: t.CompletedAt,
	}
}

func init() {
	trainingsCmd.AddCommand(createTrainingCmd)
	trainingsCmd.AddCommand(getTrainingCmd)
	trainingsCmd.AddCommand(listTrainingsCmd)
	trainingsCmd.AddCommand(cancelTrainingCmd)

	// Add flags for create
	createTrainingCmd.Flags().StringP(flagModel, "m", "", "Model reference (owner/name:version) to train from")
	createTrainingCmd.Flags().StringP(flagDestination, "d", "", "Destination model (owner/name) for the trained version")
	createTrainingCmd.Flags().StringP(flagInputJSON, "i", "{}", "Training input as a JSON object")
	createTrainingCmd.Flags().String(flagWebhook, "", "Webhook URL to notify on status changes")
	_ = createTrainingCmd.MarkFlagRequired(flagModel)
	_ = createTrainingCmd.MarkFlagRequired(flagDestination)

	// Add flags for get / cancel
	getTrainingCmd.Flags().StringP(flagTrainingID, "i", "", "Training ID")
	_ = getTrainingCmd.MarkFlagRequired(flagTrainingID)
	cancelTrainingCmd.Flags().StringP(flagTrainingID, "i", "", "Training ID")
	_ = cancelTrainingCmd.MarkFlagRequired(flagTrainingID)

	// Add flags for list
	listTrainingsCmd.Flags().String(flagCursor, "", "Pagination cursor from a previous page")
}

var trainingsCmd = &cobra.Command{
	Use:   "trainings",
	Short: "Manage trainings",
}

var createTrainingCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a training run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		model, _ := cmd.Flags().GetString(flagModel)
		destination, _ := cmd.Flags().GetString(flagDestination)
		inputJSON, _ := cmd.Flags().GetString(flagInputJSON)
		webhook, _ := cmd.Flags().GetString(flagWebhook)

		ref, err := types.ParseRef(model)
		if err != nil {
			return err
		}
		if ref.Version == "" {
			return fmt.Errorf("training requires a model reference with a version")
		}

		var input types.PredictionInput
		if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
			return fmt.Errorf("error parsing input JSON: %w", err)
		}

		training, err := apiClient.CreateTraining(context.Background(), ref.Owner, ref.Name, ref.Version, types.TrainingRequest{
			Destination: destination,
			Input:       input,
			Webhook:     webhook,
		})
		if err != nil {
			return fmt.Errorf("error creating training: %w", err)
		}

		return printJSON(newTrainingOutput(training))
	},
}

var getTrainingCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific training by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagTrainingID)

		training, err := apiClient.GetTraining(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting training: %w", err)
		}

		return printJSON(newTrainingOutput(training))
	},
}

var listTrainingsCmd = &cobra.Command{
	Use:   "list",
	Short: "List trainings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cursor, _ := cmd.Flags().GetString(flagCursor)

		page, err := apiClient.ListTrainings(context.Background(), cursor)
		if err != nil {
			return fmt.Errorf("error listing trainings: %w", err)
		}

		outputs := make([]trainingOutput, 0, len(page.Results))
		for i := range page.Results {
			outputs = append(outputs, newTrainingOutput(&page.Results[i]))
		}
		return printJSON(struct {
			Trainings []trainingOutput `json:"trainings"`
			Next      string           `json:"next,omitempty"`
		}{outputs, page.Next})
	},
}

var cancelTrainingCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Request cancellation of a running training",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagTrainingID)

		if err := apiClient.CancelTraining(context.Background(), id); err != nil {
			return fmt.Errorf("error canceling training: %w", err)
		}

		fmt.Printf("Cancellation requested for training %s\n", id)
		return nil
	},
}
