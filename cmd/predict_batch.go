package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"librisk/internal/clix"
	"librisk/internal/models"
	"librisk/internal/services"
	"librisk/internal/util"
)

var predictBatchSync bool

var predictBatchCmd = &cobra.Command{
	Use:   "predict-batch <file>",
	Short: "Classify every line of a file",
	Long: `Reads a UTF-8 text file with one problem description per line. By
default one prediction job per line is queued for the worker; with --sync the
lines are classified in this process and the results printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		lines, err := util.ReadProblemLines(args[0])
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No problems found in file.")
			return nil
		}
		user := clix.ParseUser(cmd.Flags())

		var items []services.BatchItem
		if predictBatchSync {
			items, err = appInstance.BatchService.RunSync(cmd.Context(), user, lines)
		} else {
			items, err = appInstance.BatchService.Enqueue(cmd.Context(), user, lines)
		}
		if err != nil {
			return fmt.Errorf("batch prediction failed: %w", err)
		}

		renderBatch(cmd, items)
		return nil
	},
}

func renderBatch(cmd *cobra.Command, items []services.BatchItem) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	if predictBatchSync {
		table.SetHeader([]string{"Line", "Status", "Category", "Confidence", "Problem"})
	} else {
		table.SetHeader([]string{"Line", "Status", "Task ID", "Problem"})
	}

	counts := map[string]int{}
	for _, it := range items {
		counts[it.Status]++
		status := statusString(it.Status)
		if predictBatchSync {
			category, confidence := "", ""
			if it.Result != nil {
				category = it.Result.Category
				confidence = fmt.Sprintf("%.2f%%", it.Result.Confidence)
			}
			if it.Err != nil {
				category = models.PublicMessage(it.Err)
			}
			table.Append([]string{strconv.Itoa(it.Line), status, category, confidence, truncate(it.Text, 50)})
		} else {
			table.Append([]string{strconv.Itoa(it.Line), status, it.TaskID, truncate(it.Text, 50)})
		}
	}
	table.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d completed, %d enqueued, %d skipped, %d failed\n",
		counts[models.JobStatusCompleted], counts[models.JobStatusEnqueued],
		counts[models.JobStatusSkipped], counts[models.JobStatusFailed])
}

func statusString(status string) string {
	switch status {
	case models.JobStatusCompleted, models.JobStatusEnqueued:
		return color.GreenString(status)
	case models.JobStatusSkipped:
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	predictBatchCmd.Flags().BoolVar(&predictBatchSync, "sync", false, "Classify in this process instead of queueing jobs")
	rootCmd.AddCommand(predictBatchCmd)
}
