package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"librisk/internal/clix"
	"librisk/internal/models"
	"librisk/internal/services"
)

var predictJSON bool

var predictCmd = &cobra.Command{
	Use:   "predict <problem text>",
	Short: "Classify one problem description",
	Long: `Classifies the given Arabic problem description, prints its risk
category, confidence and suggested solutions, and records it in the history
of --user.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		user := clix.ParseUser(cmd.Flags())
		res, err := appInstance.PredictionService.Predict(cmd.Context(), user, text)
		if err != nil {
			log.WithError(err).WithField("user_id", user).Debug("Prediction failed")
			return errors.New(models.PublicMessage(err))
		}

		out := cmd.OutOrStdout()
		if predictJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printPrediction(out, res)
		return nil
	},
}

func printPrediction(w io.Writer, res *services.PredictionResult) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Category:   ")
	fmt.Fprintln(w, color.GreenString(res.Category))
	if res.Description != "" {
		bold.Fprintf(w, "About:      ")
		fmt.Fprintln(w, res.Description)
	}
	bold.Fprintf(w, "Confidence: ")
	fmt.Fprintln(w, color.YellowString("%.2f%%", res.Confidence))

	bold.Fprintln(w, "Solutions:")
	for i, s := range res.Solutions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}

	if len(res.Probabilities) > 1 {
		bold.Fprintln(w, "Distribution:")
		for _, p := range res.Probabilities {
			fmt.Fprintf(w, "  %-20s %6.2f%%\n", p.Label, p.Confidence)
		}
	}
}

func init() {
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(predictCmd)
}
