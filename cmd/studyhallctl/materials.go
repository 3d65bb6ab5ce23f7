package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	materialsCmd := &cobra.Command{Use: "materials", Short: "Study material operations"}

	// list
	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's materials, most recently viewed first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/materials/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	materialsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get MATERIAL_ID",
		Short: "Get one material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/materials/detail/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	materialsCmd.AddCommand(getCmd)

	// upload
	var userID int64
	var title, description, file string
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a material file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 || title == "" || file == "" {
				return fmt.Errorf("--user, --title and --file required")
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			payload := map[string]interface{}{
				"userId": userID,
				"title":  title,
				"file":   base64.StdEncoding.EncodeToString(content),
			}
			if description != "" {
				payload["description"] = description
			}
			data, err := doPostJSON("/api/materials", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	uploadCmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID (required)")
	uploadCmd.Flags().StringVarP(&title, "title", "t", "", "Material title (required)")
	uploadCmd.Flags().StringVarP(&file, "file", "f", "", "Path to the file to upload (required)")
	uploadCmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	materialsCmd.AddCommand(uploadCmd)

	// progress
	var progress int
	progressCmd := &cobra.Command{
		Use:   "progress MATERIAL_ID",
		Short: "Update reading progress (0-100)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPutJSON(fmt.Sprintf("/api/materials/%s", args[0]), map[string]interface{}{
				"progress": progress,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	progressCmd.Flags().IntVarP(&progress, "progress", "p", 0, "Progress percentage")
	materialsCmd.AddCommand(progressCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete MATERIAL_ID",
		Short: "Delete a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("/api/materials/%s", args[0]))
		},
	}
	materialsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(materialsCmd)
}
