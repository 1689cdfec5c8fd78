package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/branchsync-cli/internal/core/domain"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driving"
)

var (
	syncSources []string
	syncDryRun  bool
	syncHost    string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise project branches with provider defaults",
}

var syncOrgCmd = &cobra.Command{
	Use:   "org <org-id>",
	Short: "Synchronise every project in an organisation",
	Long: `Aligns every project in the organisation with the current default
branch of its repository. Targets that cannot be synchronised are skipped
and reported; they never abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncOrg,
}

func init() {
	syncOrgCmd.Flags().StringSliceVar(&syncSources, "source", []string{string(domain.SourceGitHub)},
		"source-control providers to synchronise")
	syncOrgCmd.Flags().BoolVar(&syncDryRun, "dry-run", false,
		"report intended changes without applying them")
	syncOrgCmd.Flags().StringVar(&syncHost, "host", "",
		"GitHub Enterprise host (defaults to github.com)")

	syncCmd.AddCommand(syncOrgCmd)
	rootCmd.AddCommand(syncCmd)
}

func runSyncOrg(cmd *cobra.Command, args []string) error {
	orgID := args[0]

	sources := make([]domain.Source, 0, len(syncSources))
	for _, raw := range syncSources {
		source, err := domain.ParseSource(raw)
		if err != nil {
			return err
		}
		sources = append(sources, source)
	}

	syncer := orgSyncer
	if syncer == nil {
		var cleanup func()
		var err error
		syncer, cleanup, err = buildOrgSyncer(syncHost)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	if syncDryRun {
		cmd.Printf("Dry run: computing changes for org %s without applying them...\n", orgID)
	} else {
		cmd.Printf("Synchronising org %s...\n", orgID)
	}

	result, err := syncer.UpdateOrgTargets(context.Background(), driving.OrgSyncRequest{
		OrgID:   orgID,
		Sources: sources,
		DryRun:  syncDryRun,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printSyncResult(cmd, result)
	return nil
}

func printSyncResult(cmd *cobra.Command, result *domain.OrgSyncResult) {
	updated := len(result.Meta.Projects.Updated)
	failed := len(result.Meta.Projects.Failed)

	cmd.Printf("Processed %d targets: %d projects updated, %d failed.\n",
		result.ProcessedTargets, updated, failed)

	if updated > 0 {
		cmd.Printf("Updated projects log: %s\n", result.FileName)
	}
	if failed > 0 {
		cmd.Printf("Failed updates log: %s\n", result.FailedFileName)
	}
}
