// Package service is the mysite command line: the HTTP server plus the
// admin commands that manage the content store.
package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"mysite/app/config"

	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	cfg config.Config
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "mysite",
		Short: "mysite - a small blog with posts, comments and e-mail sharing",
		Long: `mysite serves a blog and manages its content store.

Settings come from MYSITE_* environment variables, for example:
  MYSITE_ADDR=:8080            Listen address
  MYSITE_STORE=badger|sqlite   Content store backend
  MYSITE_MAIL_BACKEND=console  Mail backend (console, smtp, memory)`,
		Version:       cliVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		c.newServeCmd(),
		c.newDBCmd(),
		c.newPostsCmd(),
		c.newCommentsCmd(),
		c.newUsersCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line with args and returns the process exit code.
func Execute(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mysite version %s\n", cliVersion)
			return nil
		},
	}
}

// confirm asks question on the command's output and reads a y/N answer from its input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}

// exists reports whether path is present on disk.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
