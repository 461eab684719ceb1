package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/wasteops/config"
	"github.com/kilianp07/wasteops/core/dispatch"
	"github.com/kilianp07/wasteops/core/registry"
	"github.com/kilianp07/wasteops/infra/logger"
)

var assignCmd = &cobra.Command{
	Use:   "assign <task-id> <vehicle-id>",
	Short: "Dry-run an assignment against the seeded state",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	coord, err := seededCoordinator(cfg)
	if err != nil {
		return err
	}
	taskID, vehicleID := args[0], args[1]
	if err := coord.Assign(taskID, vehicleID); err != nil {
		return err
	}
	task, err := coord.Tasks().Get(taskID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", task.ID, task.VehicleID, task.DriverName)
	return nil
}

func seededCoordinator(cfg *config.Config) (*dispatch.Coordinator, error) {
	taskReg := registry.NewTasks()
	vehicleReg := registry.NewVehicles()
	driverReg := registry.NewDrivers()
	taskReg.ReplaceAll(cfg.Seed.BuildTasks())
	vehicleReg.ReplaceAll(cfg.Seed.BuildVehicles())
	driverReg.ReplaceAll(cfg.Seed.BuildDrivers())
	return dispatch.NewCoordinator(taskReg, vehicleReg, driverReg, nil, nil, logger.New("assign-command"))
}
