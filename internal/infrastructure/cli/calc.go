package cli

import (
	"fmt"
	"os"

	"github.com/estrack/estrack/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var (
	calcFile       string
	calcJSON       bool
	calcActualTime int
	calcMilestone  float64
	calcReplan     int
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute Earned Schedule metrics for a project file",
	Long: `Calc loads a project file (YAML or XLSX), evaluates the full metrics
record for the current period and prints it with a narrative assessment.

Flags:
  --file, -f     Project file (default project.yaml)
  --actual-time  Override the current period from the file
  --milestone    Override the milestone duration from the file
  --replan       Set the re-plan period (negative disables)
  --json         Output in JSON format`,
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	services := wiring.BuildAppServices()

	proj, err := services.Projects.Load(calcFile)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	if cmd.Flags().Changed("actual-time") {
		proj.ActualTime = calcActualTime
	}
	if cmd.Flags().Changed("milestone") {
		proj.MilestoneDuration = calcMilestone
	}
	if cmd.Flags().Changed("replan") {
		if calcReplan < 0 {
			proj.ReplanTime = nil
		} else {
			rt := calcReplan
			proj.ReplanTime = &rt
		}
	}

	rec, err := services.Calc.Evaluate(proj)
	if err != nil {
		return fmt.Errorf("evaluate metrics: %w", err)
	}
	analysis, narrative := services.Calc.Classify(rec, nil)

	if calcJSON {
		return renderJSON(os.Stdout, map[string]interface{}{
			"project":     proj.Name,
			"actual_time": proj.ActualTime,
			"metrics":     rec,
			"analysis":    analysis,
			"narrative":   narrative,
		})
	}

	if proj.Name != "" {
		fmt.Printf("Project: %s\n\n", proj.Name)
	}
	renderMetricsText(os.Stdout, rec, proj.ActualTime)
	fmt.Printf("\n%s\n", narrative)
	return nil
}

func init() {
	calcCmd.Flags().StringVarP(&calcFile, "file", "f", "project.yaml", "Project file to evaluate")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "Output in JSON format")
	calcCmd.Flags().IntVar(&calcActualTime, "actual-time", 0, "Override the current period")
	calcCmd.Flags().Float64Var(&calcMilestone, "milestone", 0, "Override the milestone duration")
	calcCmd.Flags().IntVar(&calcReplan, "replan", -1, "Set the re-plan period (negative disables)")
	RootCmd.AddCommand(calcCmd)
}
