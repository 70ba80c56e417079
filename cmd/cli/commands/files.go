package commands

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inferadev/infera/pkg/types"
)

// File flag names
const (
	flagFileID   = "id"
	flagFilePath = "path"
	flagFileURL  = "url"
	flagOutPath  = "out"
)

// fileOutput represents the filtered output for a file resource
type fileOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Created     string `json:"created_at,omitempty"`
	Expires     string `json:"expires_at,omitempty"`
}

func newFileOutput(f *types.File) fileOutput {
	return fileOutput{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		Created:     f.CreatedAt,
		Expires:     f.ExpiresAt,
	}
}

func init() {
	filesCmd.AddCommand(uploadFileCmd)
	filesCmd.AddCommand(getFileCmd)
	filesCmd.AddCommand(listFilesCmd)
	filesCmd.AddCommand(deleteFileCmd)
	filesCmd.AddCommand(downloadFileCmd)

	uploadFileCmd.Flags().StringP(flagFilePath, "p", "", "Path of the file to upload")
	_ = uploadFileCmd.MarkFlagRequired(flagFilePath)

	getFileCmd.Flags().StringP(flagFileID, "i", "", "File ID")
	_ = getFileCmd.MarkFlagRequired(flagFileID)
	deleteFileCmd.Flags().StringP(flagFileID, "i", "", "File ID")
	_ = deleteFileCmd.MarkFlagRequired(flagFileID)

	listFilesCmd.Flags().String(flagCursor, "", "Pagination cursor from a previous page")

	downloadFileCmd.Flags().String(flagFileURL, "", "URL to download")
	downloadFileCmd.Flags().StringP(flagOutPath, "o", "", "Destination path")
	_ = downloadFileCmd.MarkFlagRequired(flagFileURL)
	_ = downloadFileCmd.MarkFlagRequired(flagOutPath)
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded files",
}

var uploadFileCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString(flagFilePath)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}

		name := filepath.Base(path)
		contentType := mime.TypeByExtension(filepath.Ext(path))

		file, err := apiClient.CreateFile(context.Background(), name, contentType, content)
		if err != nil {
			return fmt.Errorf("error uploading file: %w", err)
		}

		return printJSON(newFileOutput(file))
	},
}

var getFileCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a file resource by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagFileID)

		file, err := apiClient.GetFile(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting file: %w", err)
		}

		return printJSON(newFileOutput(file))
	},
}

var listFilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cursor, _ := cmd.Flags().GetString(flagCursor)

		page, err := apiClient.ListFiles(context.Background(), cursor)
		if err != nil {
			return fmt.Errorf("error listing files: %w", err)
		}

		outputs := make([]fileOutput, 0, len(page.Results))
		for i := range page.Results {
			outputs = append(outputs, newFileOutput(&page.Results[i]))
		}
		return printJSON(struct {
			Files []fileOutput `json:"files"`
			Next  string       `json:"next,omitempty"`
		}{outputs, page.Next})
	},
}

var deleteFileCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a file resource",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetString(flagFileID)

		if err := apiClient.DeleteFile(context.Background(), id); err != nil {
			return fmt.Errorf("error deleting file: %w", err)
		}

		fmt.Printf("Deleted file %s\n", id)
		return nil
	},
}

var downloadFileCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the content behind a file URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, _ := cmd.Flags().GetString(flagFileURL)
		out, _ := cmd.Flags().GetString(flagOutPath)

		content, err := apiClient.DownloadFile(context.Background(), url)
		if err != nil {
			return fmt.Errorf("error downloading file: %w", err)
		}

		if err := os.WriteFile(out, content, 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", out, err)
		}

		fmt.Printf("Wrote %d bytes to %s\n", len(content), out)
		return nil
	},
}
