package cli

import (
	"github.com/spf13/cobra"

	"github.com/alephtools/aleph-tui/internal/app"
	"github.com/alephtools/aleph-tui/internal/buildinfo"
	"github.com/alephtools/aleph-tui/internal/config"
	"github.com/alephtools/aleph-tui/internal/tui"
)

// NewRootCmd builds the command line surface. The binary takes at most
// one positional argument, a profile name overriding the config's
// default; --version and --help are handled by cobra and exit 0.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "aleph-tui [profile]",
		Short:        "Terminal dashboard for Aleph job status",
		Long:         "aleph-tui polls an Aleph server's status and metadata endpoints\nand shows the running jobs, switchable between configured profiles.",
		Args:         cobra.MaximumNArgs(1),
		Version:      buildinfo.DisplayVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := a.SetProfile(args[0]); err != nil {
					return err
				}
			}
			return tui.Run(a)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default <user-config-dir>/aleph-tui/config.yml)")

	return cmd
}
