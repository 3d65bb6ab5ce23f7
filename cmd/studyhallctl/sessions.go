package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	sessionsCmd := &cobra.Command{Use: "sessions", Short: "Study session operations"}

	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's sessions in start order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/sessions/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionsCmd.AddCommand(listCmd)

	upcomingCmd := &cobra.Command{
		Use:   "upcoming USER_ID",
		Short: "List sessions that have not started or completed yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/sessions/upcoming/%s", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionsCmd.AddCommand(upcomingCmd)

	var userID int64
	var title, subject, startTime, endTime string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a study session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 || title == "" || subject == "" || startTime == "" || endTime == "" {
				return fmt.Errorf("--user, --title, --subject, --start and --end required")
			}
			data, err := doPostJSON("/api/sessions", map[string]interface{}{
				"userId":    userID,
				"title":     title,
				"subject":   subject,
				"startTime": startTime,
				"endTime":   endTime,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().Int64VarP(&userID, "user", "u", 0, "User ID (required)")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Session title (required)")
	createCmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject (required)")
	createCmd.Flags().StringVar(&startTime, "start", "", "Start time, RFC3339 (required)")
	createCmd.Flags().StringVar(&endTime, "end", "", "End time, RFC3339 (required)")
	sessionsCmd.AddCommand(createCmd)

	completeCmd := &cobra.Command{
		Use:   "complete SESSION_ID",
		Short: "Mark a session completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPutJSON(fmt.Sprintf("/api/sessions/%s", args[0]), map[string]interface{}{
				"isCompleted": true,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionsCmd.AddCommand(completeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete SESSION_ID",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("/api/sessions/%s", args[0]))
		},
	}
	sessionsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(sessionsCmd)
}
