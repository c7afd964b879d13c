package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/probelabs/propbench/internal/config"
	"github.com/probelabs/propbench/internal/interactive"
	"github.com/probelabs/propbench/internal/scenario"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive mode",
	Long:  `Launches an interactive menu for inspecting configuration and running scenarios.`,
	Run: func(_ *cobra.Command, _ []string) {
		runInteractiveMenu()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractiveMenu() {
	fmt.Println("Propbench - Interactive Mode")
	fmt.Println("============================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					cfg, err := config.Load()
					if err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					} else {
						fmt.Println(cfg.String())
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		options = append(options, interactive.ScenarioOptions(scenario.Names, runScenarioAction)...)

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func runScenarioAction(name string) interactive.Action {
	return func() error {
		names := []string{name}
		if name == "all" {
			names = scenario.Names
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := executeScenarios(ctx, names); err != nil {
			fmt.Printf("\n❌ Error: %v\n", err)
		}

		interactive.PauseForEnter()
		return nil
	}
}
