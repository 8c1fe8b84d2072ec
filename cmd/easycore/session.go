package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	easycore "github.com/EasyScience/EasyCore-sub001"
	"github.com/EasyScience/EasyCore-sub001/logging"
	"github.com/EasyScience/EasyCore-sub001/model"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// editOptions collects the edits applied to the demonstration model.
type editOptions struct {
	sets   []string
	bounds []string
	undo   int
	redo   int
	format string
}

var edits editOptions

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Apply edits to the demo line model and show its state",
	Example: `  easycore session --set m=2 --set c=-1
  easycore session --bounds m=0:1 --set m=5 --undo 1
  easycore session --set m=3 -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.OutOrStdout(), edits)
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Apply edits to the demo line model and print the recorded script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := applyEdits(edits)
		if err != nil {
			return err
		}
		return s.WriteScript(cmd.OutOrStdout())
	},
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&edits.sets, "set", nil, "Set a parameter value, NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&edits.bounds, "bounds", nil, "Set parameter bounds, NAME=MIN:MAX (repeatable)")
	cmd.Flags().IntVar(&edits.undo, "undo", 0, "Number of steps to undo after applying edits")
	cmd.Flags().IntVar(&edits.redo, "redo", 0, "Number of steps to redo after undoing")
}

// newSession builds a session from the loaded config. The registry logs
// through the CLI zap logger, or through a slog CoreLogger configured from
// the logging section when the slog backend is selected.
func newSession() *easycore.Session {
	return easycore.New(func(o *easycore.Options) {
		cfg.RegistryOptions(nil)(&o.Registry)
		switch {
		case logBackend == "slog":
			o.Logger = logging.NewLogger(cfg.LoggerConfig())
		case logger != nil:
			o.Logger = logging.NewZapAdapter(logger)
		}
	})
}

// demoLine builds y = m*x + c with m bounded to [-10, 10].
func demoLine(s *easycore.Session) (*model.Object, error) {
	m, err := s.Parameter("m", 1, func(o *variable.ParameterOptions) {
		o.Min, o.Max = -10, 10
		o.Description = "slope"
	})
	if err != nil {
		return nil, err
	}
	c, err := s.Parameter("c", 0, func(o *variable.ParameterOptions) { o.Description = "intercept" })
	if err != nil {
		return nil, err
	}
	return s.Object("Line", "line", m, c)
}

func applyEdits(opts editOptions) (*easycore.Session, *model.Object, error) {
	s := newSession()
	line, err := demoLine(s)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range opts.bounds {
		name, raw, err := splitAssign(b)
		if err != nil {
			return nil, nil, err
		}
		lo, hi, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, nil, fmt.Errorf("bounds %q: want NAME=MIN:MAX", b)
		}
		min, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bounds %q: %w", b, err)
		}
		max, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bounds %q: %w", b, err)
		}
		p, err := line.Parameter(name)
		if err != nil {
			return nil, nil, err
		}
		if err := p.SetBounds(min, max); err != nil {
			return nil, nil, err
		}
	}
	for _, a := range opts.sets {
		name, raw, err := splitAssign(a)
		if err != nil {
			return nil, nil, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("set %q: %w", a, err)
		}
		p, err := line.Parameter(name)
		if err != nil {
			return nil, nil, err
		}
		if err := p.SetValue(v); err != nil {
			return nil, nil, err
		}
		if logger != nil {
			logger.Debug("Parameter set", zap.String("name", name), zap.Float64("requested", v), zap.Float64("stored", p.RawValue()))
		}
	}
	for i := 0; i < opts.undo; i++ {
		if err := s.Undo(); err != nil {
			return nil, nil, err
		}
	}
	for i := 0; i < opts.redo; i++ {
		if err := s.Redo(); err != nil {
			return nil, nil, err
		}
	}
	return s, line, nil
}

func splitAssign(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("%q: want NAME=VALUE", s)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}

func runSession(w io.Writer, opts editOptions) error {
	s, line, err := applyEdits(opts)
	if err != nil {
		return err
	}
	switch opts.format {
	case "yaml":
		return s.ExportYAML(w, line)
	case "", "text":
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	fmt.Fprintln(w, "Parameters:")
	for _, p := range line.Parameters() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w, "History:")
	for _, h := range s.History() {
		fmt.Fprintf(w, "  %s\n", h)
	}
	fmt.Fprintln(w, "Script:")
	for _, l := range s.Script() {
		fmt.Fprintf(w, "  %s\n", l)
	}
	return nil
}
