// Package cmd wires the tabiplan CLI: the interactive planning chat and
// the itinerary management commands.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yuta-hayashi/tabiplan/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tabiplan",
	Short: "AI-assisted travel itinerary planner",
	Long: `Tabiplan plans multi-day trips through a conversation. It collects your
travel conditions, drafts a day-by-day skeleton, then details each day,
keeping the itinerary consistent through every edit and undo.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tabiplan/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tabiplan")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TABIPLAN")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TABIPLAN_PROVIDER_MODEL for provider.model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
