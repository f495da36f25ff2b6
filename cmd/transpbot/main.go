// Command transpbot runs the vehicle condition form bot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Awindblowsggggg/Telegrambot/core/buildinfo"
	corecmd "github.com/Awindblowsggggg/Telegrambot/core/cmd"
	"github.com/Awindblowsggggg/Telegrambot/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "transpbot",
	Short: "Telegram bot for vehicle condition records",
	Long: `transpbot walks fleet operators through a fixed eleven-question form,
stores the resulting condition records, and reports open and closed
condition periods per vehicle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return corecmd.Run(corecmd.Options{
			DefaultConfigPath: configPath,
			LoadConfig:        app.LoadCarrier,
			Bootstrap:         app.Bootstrap,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("transpbot %s (%s", buildinfo.Version, buildinfo.Commit)
		if buildinfo.Date != "" {
			fmt.Printf(", %s", buildinfo.Date)
		}
		fmt.Println(")")
	},
}

var configPath string

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yml", "path to the YAML config file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
