package wiring

import (
	"github.com/estrack/estrack/pkg/application"
	"github.com/estrack/estrack/pkg/storage"
)

// AppServices exposes the application layer services wired together for the CLI.
type AppServices struct {
	Projects   *storage.ProjectRepository
	Calc       *application.CalcService
	Simulation *application.SimulationService
}

// BuildAppServices constructs the workbench of services shared by every command.
func BuildAppServices() *AppServices {
	return &AppServices{
		Projects:   storage.NewProjectRepository(),
		Calc:       application.NewCalcService(),
		Simulation: application.NewSimulationService(),
	}
}
