package cmd

import (
	"fmt"

	"imagediffer/config"

	"github.com/spf13/cobra"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// Flags are defined in init(), so an error here is a programming bug.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// applyFlags overrides config values with flags set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = mustGetString(cmd, "log-file")
	}
	if flags.Changed("workers") {
		cfg.Workers = mustGetInt(cmd, "workers")
	}
	if flags.Changed("cache-size") {
		cfg.CacheSize = mustGetInt(cmd, "cache-size")
	}
	if flags.Changed("db") {
		cfg.Database = mustGetString(cmd, "db")
	}
	if flags.Changed("progress") {
		cfg.Progress = mustGetBool(cmd, "progress")
	}
}
