package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded sync runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list <org-id>",
	Short: "List recent sync runs for an organisation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one sync run with its per-project outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store := historyStore
	if store == nil {
		var err error
		store, err = buildHistoryStore()
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()
	}

	runs, err := store.ListRuns(context.Background(), args[0], historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		mode := ""
		if run.DryRun {
			mode = " (dry run)"
		}
		cmd.Printf("%s  %s  %d targets  updated %d  failed %d%s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"), run.ID,
			run.ProcessedTargets, len(run.Projects.Updated), len(run.Projects.Failed), mode)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store := historyStore
	if store == nil {
		var err error
		store, err = buildHistoryStore()
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()
	}

	run, err := store.GetRun(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	cmd.Printf("Run %s for org %s\n", run.ID, run.OrgID)
	cmd.Printf("Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	if run.DryRun {
		cmd.Println("Mode:     dry run")
	}
	cmd.Printf("Targets processed: %d\n", run.ProcessedTargets)

	if len(run.Projects.Updated) > 0 {
		cmd.Println("Updated projects:")
		for _, u := range run.Projects.Updated {
			label := ""
			if u.Target != nil {
				label = "  " + u.Target.DisplayName
			}
			cmd.Printf("  %s  %s -> %s%s\n", u.ProjectID, u.From, u.To, label)
		}
	}
	if len(run.Projects.Failed) > 0 {
		cmd.Println("Failed updates:")
		for _, f := range run.Projects.Failed {
			cmd.Printf("  %s  %s\n", f.ProjectID, f.ErrorMessage)
		}
	}
	return nil
}
