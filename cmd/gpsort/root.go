package main

import (
	"github.com/spf13/cobra"

	"github.com/repsac/gp-sort-sequences/internal/report"
)

var version = "dev"

var (
	configFlag   string
	destFlag     string
	movieFlag    bool
	dryRunFlag   bool
	verboseFlag  bool
	selftestFlag bool
)

// exitStatus is the exit code for a run that completed. Errors
// returned through RunE never reach it; main maps those to a fatal
// exit on its own.
var exitStatus = report.ExitOK

var rootCmd = &cobra.Command{
	Use:   "gpsort [flags] <source>...",
	Short: "Organize GoPro time-lapse stills into sequence folders",
	Long: `gpsort - organize GoPro time-lapse stills

Scans the source folders for GoPro time-lapse stills, groups them by
the camera's sequence number, and moves every sequence into its own
numbered folder under the destination, split by format. Sequence
folders are numbered from 1 in the order the sequences are found, so
an emptied card always files under SEQ001 onward. Files keep their
original names.

Examples:
  gpsort -d /archive/lapse /media/card          # organize one card
  gpsort -n /media/card                         # preview, touch nothing
  gpsort -m -d /archive/lapse /media/card       # organize and render movies
  gpsort -u                                     # self-test on synthetic media`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRootCmd,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: discovered)")

	rootCmd.Flags().StringVarP(&destFlag, "destination", "d", ".", "Destination folder, must already exist")
	rootCmd.Flags().BoolVarP(&movieFlag, "movie", "m", false, "Assemble a 30 fps movie per sequence from the JPG frames")
	rootCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Report what would happen without touching anything")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging")
	rootCmd.Flags().BoolVarP(&selftestFlag, "selftest", "u", false, "Run the built-in self-test on synthetic media")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("gpsort {{.Version}}\n")
}
