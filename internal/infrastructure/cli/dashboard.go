package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/estrack/estrack/internal/infrastructure/wiring"
	"github.com/estrack/estrack/pkg/domain/simulation"
	"github.com/spf13/cobra"
)

var (
	dashFile     string
	dashSteps    int
	dashScenario string
	dashReplan   bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI simulation dashboard",
	Long: `Dashboard runs a simulation session interactively. Step through periods
one at a time or let autoplay advance the session once per second.

Keys:
  space   advance one step
  s       toggle autoplay
  r       reset a completed session
  q       quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := simulation.ParseScenario(dashScenario)
		if err != nil {
			return err
		}
		m, err := newDashboardModel(dashFile, dashSteps, scenario, dashReplan)
		if err != nil {
			return err
		}
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashFile, "file", "f", "project.yaml", "Project file to simulate")
	dashboardCmd.Flags().IntVar(&dashSteps, "steps", 5, "Number of simulation steps")
	dashboardCmd.Flags().StringVar(&dashScenario, "scenario", "maintain", "Scenario: recovery, slippage or maintain")
	dashboardCmd.Flags().BoolVar(&dashReplan, "replan", false, "Pin a re-plan point at the current period")
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var statusGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var statusBad = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type tickMsg time.Time

type dashboardModel struct {
	services *wiring.AppServices
	session  *simulation.Session
	project  string

	table    table.Model
	autoplay bool
	err      error
}

func newDashboardModel(file string, steps int, scenario simulation.Scenario, replan bool) (*dashboardModel, error) {
	services := wiring.BuildAppServices()

	proj, err := services.Projects.Load(file)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	session, err := services.Simulation.Initialize(simulation.Config{
		PlannedValues:     proj.PlannedValues,
		EarnedValues:      proj.EarnedValues,
		ActualTime:        proj.ActualTime,
		MilestoneDuration: proj.MilestoneDuration,
		MaxSteps:          steps,
		Scenario:          scenario,
		ReplanEnabled:     replan,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize simulation: %w", err)
	}

	columns := []table.Column{
		{Title: "Period", Width: 6},
		{Title: "PV", Width: 10},
		{Title: "EV", Width: 10},
		{Title: "ES", Width: 8},
		{Title: "SV(t)", Width: 8},
		{Title: "SPI(t)", Width: 8},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	name := proj.Name
	if name == "" {
		name = file
	}

	return &dashboardModel{
		services: services,
		session:  session,
		project:  name,
		table:    t,
	}, nil
}

func (m *dashboardModel) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *dashboardModel) step() {
	if _, err := m.services.Simulation.Step(); err != nil {
		if errors.Is(err, simulation.ErrComplete) {
			m.autoplay = false
		} else {
			m.err = err
		}
		return
	}
	m.refreshRows()
	if m.session.State() == simulation.StateComplete {
		m.autoplay = false
	}
}

func (m *dashboardModel) refreshRows() {
	log := m.session.Log()
	rows := make([]table.Row, len(log))
	for i, rec := range log {
		rows[i] = table.Row{
			fmt.Sprintf("%d", rec.Period),
			fmt.Sprintf("%.2f", rec.PlannedValue),
			fmt.Sprintf("%.2f", rec.EarnedValue),
			formatIndex(rec.Metrics.EarnedSchedule),
			fmt.Sprintf("%+.2f", rec.Metrics.ScheduleVariance),
			formatIndex(rec.Metrics.PerformanceIndex),
			string(rec.Analysis.Status),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoBottom()
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.step()
		case "s":
			m.autoplay = !m.autoplay
			if m.autoplay {
				return m, tick()
			}
		case "r":
			if m.session.State() == simulation.StateComplete {
				if err := m.session.Reset(); err == nil {
					m.table.SetRows(nil)
				}
			}
		}
	case tickMsg:
		if m.autoplay {
			m.step()
			if m.autoplay {
				return m, tick()
			}
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Simulation error: %v\nPress q to quit.\n", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("%s  [%s]  %d/%d steps  %s",
		m.project, m.session.Scenario(), m.session.StepCount(), m.session.MaxSteps(), m.session.State()))

	rec := m.session.Metrics()
	spiLine := fmt.Sprintf("ES %s  SV(t) %+.2f  SPI(t) %s",
		formatIndex(rec.EarnedSchedule), rec.ScheduleVariance, formatIndex(rec.PerformanceIndex))
	switch {
	case rec.PerformanceIndex >= 1.0:
		spiLine = statusGood.Render(spiLine)
	case rec.PerformanceIndex >= 0.9:
		spiLine = statusWarn.Render(spiLine)
	default:
		spiLine = statusBad.Render(spiLine)
	}

	pv, ev := m.session.Series()
	curve := renderCurve(pv, ev, 8)

	narrative := ""
	if log := m.session.Log(); len(log) > 0 {
		narrative = log[len(log)-1].Narrative
	}

	autoplayLabel := "off"
	if m.autoplay {
		autoplayLabel = "on"
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			spiLine,
			"",
			curve,
			"",
			m.table.View(),
			narrative,
			fmt.Sprintf("\n[space] Step  [s] Autoplay (%s)  [r] Reset  [q] Quit", autoplayLabel),
		),
	) + "\n"
}
