package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSessionsCmd creates the sessions command.
func NewSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored crawl sessions",
		Long: `Sessions lists the crawl sessions in the document store, most recent
first. Any listed session ID can be re-analyzed with the analyze
command.`,
		Args: cobra.NoArgs,
		RunE: runSessionsCmd,
	}
}

// runSessionsCmd executes the sessions command.
func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, store, cleanup, err := setupRun(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored sessions. Run crawl or search first.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-20s  %s\n", "SESSION", "STARTED", "SEED URL")
	for _, session := range sessions {
		fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-20s  %s\n",
			session.ID,
			session.StartedAt.Format("2006-01-02 15:04:05"),
			session.SeedURL,
		)
	}

	return nil
}
