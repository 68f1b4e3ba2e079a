package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/estrack/estrack/internal/infrastructure/notify"
	"github.com/estrack/estrack/internal/infrastructure/wiring"
	"github.com/estrack/estrack/pkg/domain/simulation"
	"github.com/estrack/estrack/pkg/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	simFile         string
	simSteps        int
	simScenario     string
	simReplan       bool
	simJSON         bool
	simReportPath   string
	simNotifyURL    string
	simNotifySecret string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted what-if simulation from the current period",
	Long: `Simulate extends the project forward step by step under a scenario:

  recovery   performance improves by 0.05 per period, capped at 1.0
  slippage   performance degrades by 0.03 per period, floored at 0.7
  maintain   performance holds at the current level

Each step extends the EV series, extrapolates PV past the baseline when
needed and re-evaluates the full metrics record.`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenario, err := simulation.ParseScenario(simScenario)
	if err != nil {
		return err
	}
	if simSteps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", simSteps)
	}

	services := wiring.BuildAppServices()

	proj, err := services.Projects.Load(simFile)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	session, err := services.Simulation.Initialize(simulation.Config{
		PlannedValues:     proj.PlannedValues,
		EarnedValues:      proj.EarnedValues,
		ActualTime:        proj.ActualTime,
		MilestoneDuration: proj.MilestoneDuration,
		MaxSteps:          simSteps,
		Scenario:          scenario,
		ReplanEnabled:     simReplan,
	})
	if err != nil {
		return fmt.Errorf("initialize simulation: %w", err)
	}
	initial := session.Metrics()

	if simNotifyURL != "" {
		notifier := notify.NewNotifier(simNotifyURL, simNotifySecret)
		services.Simulation.Subscribe(func(rec simulation.StepRecord) {
			if err := notifier.StepCompleted(cmd.Context(), session.ID(), rec); err != nil {
				fmt.Fprintf(os.Stderr, "notify: %v\n", err)
			}
		})
	}

	var bar *progressbar.ProgressBar
	if !simJSON {
		fmt.Printf("Session %s  scenario=%s  steps=%d\n\n", session.ID(), scenario, simSteps)
		renderMetricsText(os.Stdout, initial, proj.ActualTime)
		fmt.Println()
		bar = progressbar.Default(int64(simSteps), "simulating")
	}

	for {
		rec, err := services.Simulation.Step()
		if errors.Is(err, simulation.ErrComplete) {
			break
		}
		if err != nil {
			return fmt.Errorf("simulation step: %w", err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if !simJSON {
			printStep(rec)
		}
		if session.State() == simulation.StateComplete {
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	report := storage.NewReport(proj.Name, initial, session)

	if simReportPath != "" {
		if err := storage.SaveReport(simReportPath, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		if !simJSON {
			fmt.Printf("Report written to %s\n", simReportPath)
		}
	}

	if simJSON {
		return renderJSON(os.Stdout, report)
	}

	final := session.Metrics()
	fmt.Println("\nFinal Metrics")
	fmt.Println("=============")
	renderMetricsText(os.Stdout, final, session.Period())
	if log := session.Log(); len(log) > 0 {
		fmt.Printf("\n%s\n", log[len(log)-1].Narrative)
	}
	return nil
}

func printStep(rec *simulation.StepRecord) {
	fmt.Printf("\nPeriod %d: PV=%.2f EV=%.2f ES=%s SV(t)=%+.2f SPI(t)=%s [%s]\n",
		rec.Period,
		rec.PlannedValue,
		rec.EarnedValue,
		formatIndex(rec.Metrics.EarnedSchedule),
		rec.Metrics.ScheduleVariance,
		formatIndex(rec.Metrics.PerformanceIndex),
		rec.Analysis.Status,
	)
}

func init() {
	simulateCmd.Flags().StringVarP(&simFile, "file", "f", "project.yaml", "Project file to simulate")
	simulateCmd.Flags().IntVar(&simSteps, "steps", 5, "Number of simulation steps")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "maintain", "Scenario: recovery, slippage or maintain")
	simulateCmd.Flags().BoolVar(&simReplan, "replan", false, "Pin a re-plan point at the current period")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "Output the full report as JSON")
	simulateCmd.Flags().StringVar(&simReportPath, "report", "", "Write the session report to this path")
	simulateCmd.Flags().StringVar(&simNotifyURL, "notify-url", "", "Webhook URL notified after every step")
	simulateCmd.Flags().StringVar(&simNotifySecret, "notify-secret", "", "HMAC secret for webhook signatures")
	RootCmd.AddCommand(simulateCmd)
}
