package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database, model and Redis health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		cfg := appInstance.Config
		ok := color.GreenString("ok")

		fmt.Fprintf(w, "Database (%s)... ", cfg.Database.Driver)
		if err := appInstance.Store.Ping(ctx); err != nil {
			fmt.Fprintln(w, color.RedString("failed"))
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Fprintln(w, ok)

		fmt.Fprint(w, "Model... ")
		if appInstance.Bundle == nil {
			fmt.Fprintf(w, "%s (%v)\n", color.RedString("unavailable"), appInstance.ModelErr)
		} else {
			fmt.Fprintf(w, "%s (%d labels, %d features)\n", ok, len(appInstance.Bundle.Labels), appInstance.Bundle.Vectorizer.Dim())
		}

		fmt.Fprintf(w, "Redis (%s)... ", cfg.Redis.Address)
		inspector := asynq.NewInspector(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer inspector.Close()
		if _, err := inspector.Queues(); err != nil {
			fmt.Fprintf(w, "%s (%v); batch jobs will not run\n", color.YellowString("unreachable"), err)
		} else {
			fmt.Fprintln(w, ok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
