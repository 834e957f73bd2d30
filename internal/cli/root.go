package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "swapd",
	Short: "swapd - automated market maker exchange daemon",
	Long: `swapd runs a constant-product exchange engine over a local key-value
store. It accepts exchange actions and incoming-transfer notifications over
JSON-RPC, applies them atomically, and reports the outbound settlements the
host must execute.`,
	Version: "0.1.0",
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
}
