// Package commands implements the CLI commands for mdclean.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/mdclean/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mdclean",
	Short: "Strip Markdown and HTML down to plain text",
	Long: `mdclean removes Markdown syntax from text and returns plain, readable prose.

Input can be files, standard input or URLs. HTML input, such as pasted rich
text or a web page, is converted to Markdown first.

Examples:
  # Clean a file
  mdclean clean README.md

  # Clean from stdin and copy the result
  pbpaste | mdclean clean --copy

  # Clean the main article of a web page, keeping link targets
  mdclean clean --url https://example.com/post --article --link-urls append

  # Report what the pipeline removed
  mdclean stats --format yaml notes.md`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.mdclean.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress progress output")
	flags.Bool("log-json", false, "write logs as JSON")

	// Pipeline flags shared by every command that cleans
	flags.String("from", "auto", "input format: auto, markdown, html")
	flags.Bool("article", false, "extract the main article from HTML before cleaning")
	flags.String("link-urls", "drop", "link targets: drop (text only) or append (text (url))")
	flags.String("max-size", "10MB", "max input size per source (e.g. 512KB, 10MB, 0=unlimited)")
	flags.Duration("timeout", 30*time.Second, "timeout for fetching URLs")
	flags.String("user-agent", "", "user agent for fetching URLs")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
	_ = viper.BindPFlag("from", flags.Lookup("from"))
	_ = viper.BindPFlag("article", flags.Lookup("article"))
	_ = viper.BindPFlag("link_urls", flags.Lookup("link-urls"))
	_ = viper.BindPFlag("max_size", flags.Lookup("max-size"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".mdclean")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("MDCLEAN")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initLogger configures logging from flags, environment and config file.
func initLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
