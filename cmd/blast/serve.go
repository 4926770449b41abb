package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Blast SSH server",
	Long: `Serve Blast over SSH. Every connection gets its own menu, board and
scoreboard; finished games go to the shared results database.

The host key is read from --host-key, or generated at ~/.blast/host_key.

Examples:
  blast serve
  blast serve --ssh :2222 --difficulty hard
  blast serve --host-key ./host_key --db ./results.db

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (generated when empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Minutes of inactivity before a session is dropped")
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		NewGame:     newGame,
		Logger:      logger.WithPrefix("ssh"),
	})
	if err != nil {
		return fmt.Errorf("create ssh server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Blast SSH server on %s (Ctrl+C to stop)\n", flagSSHAddr)
	return server.ListenAndServe()
}
