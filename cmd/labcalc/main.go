package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/labcalc/internal/aggregate"
	"github.com/san-kum/labcalc/internal/config"
	"github.com/san-kum/labcalc/internal/logger"
	"github.com/san-kum/labcalc/internal/physnum"
	"github.com/san-kum/labcalc/internal/storage"
	"github.com/san-kum/labcalc/internal/units"
	"github.com/san-kum/labcalc/internal/viz"
	"github.com/san-kum/labcalc/internal/worksheet"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	theme      string
	save       bool
	useMean    bool
	unitFlag   string
	uncFlag    string
	plotWidth  int
	plotHeight int
	configOut  string
	configIn   string

	settings *config.Config
	log      *logger.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "labcalc",
		Short:         "measurement arithmetic with uncertainty propagation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Apply(); err != nil {
				return err
			}
			l, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			if !slices.Contains(viz.ThemeNames(), theme) {
				return fmt.Errorf("unknown theme: %s (available: %s)", theme, strings.Join(viz.ThemeNames(), ", "))
			}
			settings, log = cfg, l
			viz.SetTheme(theme)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				log.Sync()
			}
		},
	}

	defaults := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Int("precision", defaults.Precision, "significant digits for arithmetic")
	pf.String("rounding", defaults.Rounding, "rounding mode (half_even, half_up, half_down, down, up, floor, ceil)")
	pf.String("dimensions", defaults.Dimensions, "mixed-dimension policy (strict, legacy)")
	pf.String("format", defaults.Format, "output format (plain, latex, macro)")
	pf.String("data", defaults.DataDir, "data directory for saved runs")
	pf.String("log-mode", defaults.LogMode, "logging (dev, debug, prod, off)")
	pf.StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run [sheet.yaml...]",
		Short: "evaluate one or more worksheets",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSheet,
	}
	runCmd.Flags().BoolVar(&save, "save", false, "save the results to the data directory")

	convertCmd := &cobra.Command{
		Use:   "convert [value] [uncertainty] [from] [to]",
		Short: "convert a measurement between units",
		Args:  cobra.ExactArgs(4),
		RunE:  convertValue,
	}

	averageCmd := &cobra.Command{
		Use:   "average [values...]",
		Short: "average repeated readings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  averageValues,
	}
	averageCmd.Flags().StringVar(&unitFlag, "unit", "", "unit of the readings")
	averageCmd.Flags().StringVar(&uncFlag, "uncertainty", "0", "uncertainty of each reading")
	averageCmd.Flags().BoolVar(&useMean, "mean", false, "report the standard error of the mean")

	plotCmd := &cobra.Command{
		Use:   "plot [sheet.yaml] [series]",
		Short: "plot a series of readings with its bounds",
		Args:  cobra.ExactArgs(2),
		RunE:  plotSeries,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", viz.DefaultPlotWidth, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", viz.DefaultPlotHeight, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the results of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse saved runs interactively",
		RunE:  browseRuns,
	}

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "list known units",
		RunE:  listUnits,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s precision=%d rounding=%s dimensions=%s format=%s\n",
					name, p.Precision, p.Rounding, p.Dimensions, p.Format)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print, save or check configuration",
		RunE:  configure,
	}
	configCmd.Flags().StringVar(&configOut, "save", "", "write the effective configuration to this file")
	configCmd.Flags().StringVar(&configIn, "check", "", "validate a config file without applying it")

	rootCmd.AddCommand(runCmd, convertCmd, averageCmd, plotCmd, listCmd, showCmd, browseCmd, unitsCmd, presetsCmd, configCmd)
	return rootCmd
}

func runSheet(cmd *cobra.Command, args []string) error {
	sheets := make([]*worksheet.Sheet, len(args))
	for i, path := range args {
		sheet, err := worksheet.Load(path)
		if err != nil {
			return err
		}
		if sheet.Name == "" {
			sheet.Name = path
		}
		sheets[i] = sheet
	}

	evs, runErr := worksheet.RunAll(cmd.Context(), sheets, log)

	var st *storage.Store
	if save {
		st = storage.New(settings.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	for _, ev := range evs {
		if ev == nil {
			continue
		}
		fmt.Println(viz.RenderTable(ev.Sheet, toRows(ev.Results), settings.FormatMode()))
		if st == nil {
			continue
		}
		runID, err := st.Save(ev.Sheet, ev.Results)
		if err != nil {
			return err
		}
		log.Info("run saved", "id", runID, "sheet", ev.Sheet, "dir", settings.DataDir)
		fmt.Printf("run id: %s\n", runID)
	}
	return runErr
}

func toRows(results []worksheet.Result) []viz.Row {
	rows := make([]viz.Row, len(results))
	for i, r := range results {
		op := r.Op
		if r.Units != "" {
			op = fmt.Sprintf("%s [%s]", r.Op, r.Units)
		}
		rows[i] = viz.Row{Name: r.Name, Op: op, Number: r.Number}
	}
	return rows
}

func lookupUnit(symbol string) (units.Unit, error) {
	if symbol == "" {
		return units.Unit{}, nil
	}
	return units.Default.Lookup(symbol)
}

func convertValue(cmd *cobra.Command, args []string) error {
	from, err := units.Default.Lookup(args[2])
	if err != nil {
		return err
	}
	to, err := units.Default.Lookup(args[3])
	if err != nil {
		return err
	}
	if !units.SameDimension(from, to) {
		return fmt.Errorf("%w: cannot express %s in %s", physnum.ErrDimensionMismatch, from, to)
	}

	n, err := physnum.New(args[0], args[1], from)
	if err != nil {
		return err
	}
	c, _ := n.ConvertTo(to)
	fmt.Println(c.Render(settings.FormatMode(), true))
	return nil
}

func averageValues(cmd *cobra.Command, args []string) error {
	u, err := lookupUnit(unitFlag)
	if err != nil {
		return err
	}

	readings := make([]physnum.Number, 0, len(args))
	for _, a := range args {
		n, err := physnum.New(a, uncFlag, u)
		if err != nil {
			return err
		}
		readings = append(readings, n)
	}

	reduce, op := aggregate.Average, "average"
	if useMean {
		reduce, op = aggregate.Mean, "mean"
	}
	result, err := reduce(readings)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderTable("", []viz.Row{{Name: fmt.Sprintf("%d readings", len(readings)), Op: op, Number: result}}, settings.FormatMode()))
	return nil
}

func plotSeries(cmd *cobra.Command, args []string) error {
	sheet, err := worksheet.Load(args[0])
	if err != nil {
		return err
	}
	ev, err := worksheet.Run(cmd.Context(), sheet, log)
	if err != nil {
		return err
	}

	series, ok := ev.Series(args[1])
	if !ok {
		return fmt.Errorf("%s has no series named %s", args[0], args[1])
	}
	fmt.Println(viz.PlotSeries(args[1], series, plotWidth, plotHeight))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHEET\tTIME\tRESULTS\tPRECISION\tDIMENSIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Sheet,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Results,
			run.Precision,
			run.Dimensions,
		)
	}
	return w.Flush()
}

func loadRows(st *storage.Store, runID string) ([]viz.Row, error) {
	stored, err := st.LoadResults(runID)
	if err != nil {
		return nil, err
	}
	rows := make([]viz.Row, 0, len(stored))
	for _, r := range stored {
		n, err := r.Number()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name, err)
		}
		rows = append(rows, viz.Row{Name: r.Name, Number: n})
	}
	return rows, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := loadRows(st, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("saved: %s\n", meta.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("precision: %d (%s), dimensions: %s\n", meta.Precision, meta.Rounding, meta.Dimensions)
	fmt.Println(viz.Separator(48))
	fmt.Println(viz.RenderTable(meta.Sheet, rows, settings.FormatMode()))
	return nil
}

func browseRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	summaries := make([]viz.RunSummary, len(runs))
	for i, r := range runs {
		summaries[i] = viz.RunSummary{ID: r.ID, Sheet: r.Sheet, Saved: r.Timestamp.Local(), Results: r.Results}
	}
	load := func(id string) ([]viz.Row, error) { return loadRows(st, id) }

	p := tea.NewProgram(viz.NewBrowser(summaries, load, settings.FormatMode()), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func configure(cmd *cobra.Command, args []string) error {
	if configIn != "" {
		cfg, err := config.Load(configIn)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", configIn, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", configIn)
		return nil
	}
	if configOut != "" {
		if err := config.Save(configOut, settings); err != nil {
			return err
		}
		log.Info("config saved", "path", configOut)
		return nil
	}
	return yaml.NewEncoder(cmd.OutOrStdout()).Encode(settings)
}

func listUnits(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tDIMENSION\tBASE^POWER\tSI")
	for _, u := range units.Default.List() {
		si := ""
		if u.SI {
			si = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d^%d\t%s\n", u.Symbol, u.Name, u.Dimension, u.Base, u.Power, si)
	}
	return w.Flush()
}
