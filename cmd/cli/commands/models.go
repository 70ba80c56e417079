package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inferadev/infera/pkg/types"
)

// modelOutput represents the filtered output for a model
type modelOutput struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
	RunCount      int64  `json:"run_count,omitempty"`
	LatestVersion string `json:"latest_version,omitempty"`
}

// versionOutput represents the filtered output for a model version
type versionOutput struct {
	ID         string `json:"id"`
	CogVersion string `json:"cog_version,omitempty"`
	Created    string `json:"created_at,omitempty"`
}

func init() {
	modelsCmd.AddCommand(getModelCmd)
	modelsCmd.AddCommand(listVersionsCmd)

	getModelCmd.Flags().StringP(flagModel, "m", "", "Model reference (owner/name)")
	_ = getModelCmd.MarkFlagRequired(flagModel)

	listVersionsCmd.Flags().StringP(flagModel, "m", "", "Model reference (owner/name)")
	listVersionsCmd.Flags().String(flagCursor, "", "Pagination cursor from a previous page")
	_ = listVersionsCmd.MarkFlagRequired(flagModel)
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect models and their versions",
}

var getModelCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a model by reference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		model, _ := cmd.Flags().GetString(flagModel)

		ref, err := types.ParseRef(model)
		if err != nil {
			return err
		}

		m, err := apiClient.GetModel(context.Background(), ref.Owner, ref.Name)
		if err != nil {
			return fmt.Errorf("error getting model: %w", err)
		}

		output := modelOutput{
			Owner:       m.Owner,
			Name:        m.Name,
			Description: m.Description,
			Visibility:  m.Visibility,
			RunCount:    m.RunCount,
		}
		if m.LatestVersion != nil {
			output.LatestVersion = m.LatestVersion.ID
		}
		return printJSON(output)
	},
}

var listVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List a model's versions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		model, _ := cmd.Flags().GetString(flagModel)
		cursor, _ := cmd.Flags().GetString(flagCursor)

		ref, err := types.ParseRef(model)
		if err != nil {
			return err
		}

		page, err := apiClient.ListVersions(context.Background(), ref.Owner, ref.Name, cursor)
		if err != nil {
			return fmt.Errorf("error listing versions: %w", err)
		}

		outputs := make([]versionOutput, 0, len(page.Results))
		for _, v := range page.Results {
			outputs = append(outputs, versionOutput{ID: v.ID, CogVersion: v.CogVersion, Created: v.CreatedAt})
		}
		return printJSON(struct {
			Versions []versionOutput `json:"versions"`
			Next     string          `json:"next,omitempty"`
		}{outputs, page.Next})
	},
}
