// Package cli provides the branchsync command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/github"
	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/logfile"
	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/platform"
	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/scm"
	"github.com/custodia-labs/branchsync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/branchsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/branchsync-cli/internal/core/services"
	"github.com/custodia-labs/branchsync-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "branchsync",
	Short: "Keep project branches aligned with their repository defaults",
	Long: `branchsync keeps a security-scanning platform's monitored projects
aligned with the current default branch of each project's repository.

It lists an organisation's targets per source-control provider, asks the
provider for each repository's default branch, and updates every project
whose recorded branch has drifted.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Services used by the commands. Set by the default builders on first
// use; tests swap them for mocks.
var (
	orgSyncer    driving.OrgSyncer
	historyStore driven.SyncHistoryStore
)

// buildOrgSyncer wires the real adapters behind the org syncer. The host
// argument overrides the configured GitHub Enterprise host for this
// invocation. The returned cleanup closes the history store so its WAL
// is checkpointed before process exit; callers must run it once the
// sync has completed.
var buildOrgSyncer = func(host string) (driving.OrgSyncer, func(), error) {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}

	if host == "" {
		host = cfg.GitHubHost()
	}

	client := platform.NewClient(cfg.APIURL(), cfg.APIToken())
	registry := scm.NewRegistry(github.NewSourceHandler(cfg.GitHubToken(), host))

	logDir, err := cfg.LoggingPath()
	if err != nil {
		// The writer falls back to bare file names in the working
		// directory, mirroring the reported log paths.
		logDir = ""
	}
	syncLog := logfile.NewWriter(logDir)

	history := openHistoryStore()
	cleanup := func() {
		if history == nil {
			return
		}
		if err := history.Close(); err != nil {
			logger.Warn("Failed to close history store: %v", err)
		}
	}

	syncer := services.NewTargetSynchronizer(client, client, registry, syncLog)
	return services.NewOrgSyncOrchestrator(client, client, registry, syncer, cfg, history), cleanup, nil
}

// buildHistoryStore opens the on-disk history store.
var buildHistoryStore = func() (driven.SyncHistoryStore, error) {
	return sqlite.NewStore("")
}

// openHistoryStore opens the store for run recording; recording is best
// effort, so a failure here only disables auditing.
func openHistoryStore() driven.SyncHistoryStore {
	store, err := buildHistoryStore()
	if err != nil {
		logger.Warn("Sync history disabled: %v", err)
		return nil
	}
	return store
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
