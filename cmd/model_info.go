package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var modelInfoCmd = &cobra.Command{
	Use:   "model-info",
	Short: "Show training metadata of the loaded model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		svc := appInstance.ModelInfoService
		info := svc.Info()
		w := cmd.OutOrStdout()

		status := color.GreenString("loaded")
		if !svc.ModelLoaded() {
			status = color.RedString("unavailable")
		}
		fmt.Fprintf(w, "Model:         %s\n", status)
		if appInstance.ModelDir != "" {
			fmt.Fprintf(w, "Directory:     %s\n", appInstance.ModelDir)
		}
		fmt.Fprintf(w, "Type:          %s\n", valueOrDash(info.ModelType))
		fmt.Fprintf(w, "Trained:       %s\n", valueOrDash(info.TrainingDate))
		fmt.Fprintf(w, "Accuracy:      %.2f%%\n", info.Accuracy*100)
		fmt.Fprintf(w, "Samples:       %d\n", info.NumSamples)
		fmt.Fprintf(w, "Features:      %d\n", info.NumFeatures)
		fmt.Fprintf(w, "Categories:    %s\n", strings.Join(info.Categories, "، "))
		if appInstance.Resolver != nil {
			fmt.Fprintf(w, "Max solutions: %d\n", appInstance.Resolver.MaxSolutions())
		}
		return nil
	},
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(modelInfoCmd)
}
