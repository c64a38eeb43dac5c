package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/internal/store"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Log time against issues",
}

var workLogCmd = &cobra.Command{
	Use:   "log <issue-id> <hours>",
	Short: "Log hours against an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := parseID(args[0])
		if err != nil {
			return err
		}

		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid hours %q", args[1])
		}

		userID, _ := cmd.Flags().GetUint("user")
		description, _ := cmd.Flags().GetString("description")
		dateFlag, _ := cmd.Flags().GetString("date")

		workDate := time.Now()
		if dateFlag != "" {
			workDate, err = time.Parse("2006-01-02", dateFlag)
			if err != nil {
				return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateFlag)
			}
		}

		worklog, err := entities.CreateWorklog(store.CreateWorklogParams{
			IssueID:     issueID,
			LoggerID:    optionalID(userID),
			Hours:       hours,
			WorkDate:    workDate,
			Description: description,
		})
		if err != nil {
			return err
		}

		fmt.Printf("logged %.2f hours against issue %d\n", worklog.Hours, worklog.IssueID)
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment on issues",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <issue-id> <text>",
	Short: "Add a comment to an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, err := parseID(args[0])
		if err != nil {
			return err
		}

		userID, _ := cmd.Flags().GetUint("user")

		comment, err := entities.CreateComment(store.CreateCommentParams{
			IssueID:  issueID,
			AuthorID: optionalID(userID),
			Text:     args[1],
		})
		if err != nil {
			return err
		}

		fmt.Printf("added comment %d to issue %d\n", comment.ID, comment.IssueID)
		return nil
	},
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <comment-id> <text>",
	Short: "Replace a comment's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		comment, err := entities.UpdateCommentText(id, args[1])
		if err != nil {
			return err
		}

		fmt.Printf("updated comment %d\n", comment.ID)
		return nil
	},
}

func init() {
	workLogCmd.Flags().Uint("user", 0, "logging user id")
	workLogCmd.Flags().String("description", "", "what the time was spent on")
	workLogCmd.Flags().String("date", "", "work date as YYYY-MM-DD, default today")

	workCmd.AddCommand(workLogCmd)

	commentAddCmd.Flags().Uint("user", 0, "authoring user id")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
}
