package cli

import (
	"fmt"
	"time"

	"github.com/estrack/estrack/internal/infrastructure/watch"
	"github.com/estrack/estrack/internal/infrastructure/wiring"
	"github.com/estrack/estrack/pkg/domain/schedule"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a project file and re-evaluate metrics on every change",
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "project.yaml"
		if len(args) > 0 {
			file = args[0]
		}

		services := wiring.BuildAppServices()

		var prev *schedule.MetricsRecord
		evaluate := func() {
			proj, err := services.Projects.Load(file)
			if err != nil {
				fmt.Printf("load project: %v\n", err)
				return
			}
			rec, err := services.Calc.Evaluate(proj)
			if err != nil {
				fmt.Printf("evaluate metrics: %v\n", err)
				return
			}
			_, narrative := services.Calc.Classify(rec, prev)
			prev = rec

			renderMetricsText(cmd.OutOrStdout(), rec, proj.ActualTime)
			fmt.Printf("\n%s\n", narrative)
		}

		watcher, err := watch.NewFileWatcher(file, watchDebounce, func() {
			fmt.Printf("\nChange detected at %s\n", time.Now().Format("15:04:05"))
			evaluate()
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}

		fmt.Printf("Watching %s for changes... (Ctrl+C to stop)\n", file)
		evaluate()

		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet window before re-evaluating")
	RootCmd.AddCommand(watchCmd)
}
