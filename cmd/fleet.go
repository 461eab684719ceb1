package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/wasteops/config"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List seeded vehicles and their eligibility",
	RunE:  runFleetLs,
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	coord, err := seededCoordinator(cfg)
	if err != nil {
		return err
	}
	eligible := make(map[string]bool)
	for _, v := range coord.Eligible() {
		eligible[v.ID] = true
	}
	snap := coord.Snapshot()
	for _, v := range snap.Vehicles {
		mark := " "
		if eligible[v.ID] {
			mark = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-6s %-20s %-12s driver=%s load=%.0f/%.0fkg\n",
			mark, v.ID, v.Name, v.Status, v.DriverName, v.CurrentLoadKg, v.CapacityKg)
	}
	return nil
}
