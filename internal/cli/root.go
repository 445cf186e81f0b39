// Package cli implements the pypeek command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pypeek/pypeek/internal/printer"
	"github.com/pypeek/pypeek/internal/summary"
)

var (
	cfgFile string
	verbose bool
	format  string
)

// rootCmd summarizes a single Python source file.
var rootCmd = &cobra.Command{
	Use:   "pypeek <file>",
	Short: "Structural summary of a Python source file",
	Long: `pypeek prints the structure of one Python file: module docstring,
classes and their methods, top-level functions, the main entry point,
return statements, and whether the file carries a __main__ guard.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pypeek.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show conditions around return statements")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text or json")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".pypeek" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pypeek")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// runSummarize summarizes one file and renders the outcome. A skipped file
// is reported to stderr and is not an error.
func runSummarize(cmd *cobra.Command, path string) error {
	ms, err := summary.SummarizeFile(path)
	if errors.Is(err, summary.ErrSkipped) {
		fmt.Fprintf(os.Stderr, "skipping %s: not a Python file or missing shebang\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return render(cmd.OutOrStdout(), path, ms)
}

func render(w io.Writer, path string, ms *summary.ModuleSummary) error {
	switch viper.GetString("format") {
	case "json":
		return printer.JSON(w, ms)
	default:
		return printer.Text(w, path, ms, printer.Options{Verbose: viper.GetBool("verbose")})
	}
}
