package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/probelabs/propbench/internal/config"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that required configuration is present",
	Long: `Reports which configuration fields are set and which are missing, as a
checklist. Missing fields do not abort: some scenarios can still run
partially without all of them.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		missing := cfg.MissingFields()
		missingSet := make(map[string]bool, len(missing))
		for _, field := range missing {
			missingSet[field] = true
		}

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)

		fmt.Println("Prerequisite check:")
		for _, field := range []string{"GITHUB_OWNER", "GITHUB_REPO", "GITHUB_TOKEN", "CMS_CONTENT_URL", "CMS_QUERY_URL"} {
			if missingSet[field] {
				red.Printf("  ✗ %s (not set)\n", field)
			} else {
				green.Printf("  ✓ %s\n", field)
			}
		}

		if len(missing) > 0 {
			fmt.Fprintf(os.Stdout, "\n%d field(s) missing; scenarios that need them will record failures.\n", len(missing))
		} else {
			fmt.Println("\nAll required fields are set.")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
