package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	aiCmd := &cobra.Command{Use: "ai", Short: "Assistant operations"}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show assistant availability and active backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/ai/status")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	aiCmd.AddCommand(statusCmd)

	var chatUser int64
	var conversationID int64
	chatCmd := &cobra.Command{
		Use:   "chat MESSAGE",
		Short: "Send a chat message to the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chatUser <= 0 {
				return fmt.Errorf("--user required")
			}
			payload := map[string]interface{}{
				"userId":  chatUser,
				"message": args[0],
			}
			if conversationID > 0 {
				payload["conversationId"] = conversationID
			}
			data, err := doPostJSON("/api/ai/chat", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	chatCmd.Flags().Int64VarP(&chatUser, "user", "u", 0, "User ID (required)")
	chatCmd.Flags().Int64VarP(&conversationID, "conversation", "c", 0, "Conversation ID to continue")
	aiCmd.AddCommand(chatCmd)

	var sumUser, sumMaterial int64
	var sumFile string
	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a text file into a study note",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sumUser <= 0 || sumMaterial <= 0 || sumFile == "" {
				return fmt.Errorf("--user, --material and --file required")
			}
			content, err := os.ReadFile(sumFile)
			if err != nil {
				return err
			}
			data, err := doPostJSON("/api/ai/summarize", map[string]interface{}{
				"userId":     sumUser,
				"materialId": sumMaterial,
				"content":    string(content),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	summarizeCmd.Flags().Int64VarP(&sumUser, "user", "u", 0, "User ID (required)")
	summarizeCmd.Flags().Int64VarP(&sumMaterial, "material", "m", 0, "Material ID (required)")
	summarizeCmd.Flags().StringVarP(&sumFile, "file", "f", "", "Path to text file (required)")
	aiCmd.AddCommand(summarizeCmd)

	var cardUser, cardMaterial int64
	var cardCount int
	flashcardsCmd := &cobra.Command{
		Use:   "flashcards TOPIC",
		Short: "Generate flashcards for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cardUser <= 0 {
				return fmt.Errorf("--user required")
			}
			payload := map[string]interface{}{
				"userId": cardUser,
				"topic":  args[0],
				"count":  cardCount,
			}
			if cardMaterial > 0 {
				payload["materialId"] = cardMaterial
			}
			data, err := doPostJSON("/api/ai/flashcards", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	flashcardsCmd.Flags().Int64VarP(&cardUser, "user", "u", 0, "User ID (required)")
	flashcardsCmd.Flags().Int64VarP(&cardMaterial, "material", "m", 0, "Material ID to attach cards to")
	flashcardsCmd.Flags().IntVarP(&cardCount, "count", "c", 5, "Number of cards")
	aiCmd.AddCommand(flashcardsCmd)

	var planUser int64
	var planDays, planHours int
	planCmd := &cobra.Command{
		Use:   "plan TOPIC [TOPIC...]",
		Short: "Generate and schedule a study plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if planUser <= 0 {
				return fmt.Errorf("--user required")
			}
			data, err := doPostJSON("/api/ai/study-plan", map[string]interface{}{
				"userId":       planUser,
				"topics":       args,
				"durationDays": planDays,
				"hoursPerDay":  planHours,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	planCmd.Flags().Int64VarP(&planUser, "user", "u", 0, "User ID (required)")
	planCmd.Flags().IntVarP(&planDays, "days", "d", 7, "Plan length in days")
	planCmd.Flags().IntVar(&planHours, "hours", 2, "Study hours per day")
	aiCmd.AddCommand(planCmd)

	rootCmd.AddCommand(aiCmd)
}
