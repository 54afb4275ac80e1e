package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
)

var (
	cfgFile string
	envFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiosummarizer",
	Short: "Summarize WAV and MP3 recordings with Gemini",
	Long: `Summarize WAV and MP3 recordings with Google's Gemini models.
- serve: web page and JSON API for uploads, plus an optional drop folder
- summarize: summarize a single local file and print the result`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded when present")
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithEnvFile(cfgFile, envFile)
}
