package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"librisk/internal/clix"
)

// historyCmd represents the base command for history operations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View or clear a user's classification history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistoryCmd.RunE(cmd, args)
	},
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List classified problems, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		limit, err := clix.ParseLimit(cmd.Flags())
		if err != nil {
			return err
		}
		user := clix.ParseUser(cmd.Flags())

		problems, err := appInstance.HistoryService.List(cmd.Context(), user, limit)
		if err != nil {
			return fmt.Errorf("error listing history: %w", err)
		}

		if len(problems) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history found.")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"ID", "Problem", "Category", "Confidence", "Solutions", "Created At"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, p := range problems {
			table.Append([]string{
				strconv.FormatInt(p.ID, 10),
				truncate(p.ProblemText, 50),
				p.Category,
				fmt.Sprintf("%.2f%%", p.Confidence),
				truncate(strings.Join(p.Solutions, "، "), 60),
				p.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()
		return nil
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry of the user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		user := clix.ParseUser(cmd.Flags())

		n, err := appInstance.HistoryService.Clear(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("error clearing history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d history entries for %s.\n", n, user)
		return nil
	},
}

func init() {
	// Flags for list command
	for _, c := range []*cobra.Command{historyCmd, listHistoryCmd} {
		c.Flags().IntP("limit", "n", 0, "Maximum number of entries to show (0 = all)")
	}

	// Add subcommands to historyCmd
	historyCmd.AddCommand(listHistoryCmd)
	historyCmd.AddCommand(clearHistoryCmd)

	// Add historyCmd to the root command
	rootCmd.AddCommand(historyCmd)
}
