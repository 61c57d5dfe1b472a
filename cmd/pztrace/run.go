package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/pinchzoom"
)

const (
	defaultFrameMS   = 1000.0 / 60
	defaultMaxFrames = 100_000
	// settleFrames bounds how long a finished script may keep animating.
	settleFrames = 600
)

// traceOptions configures one replay.
type traceOptions struct {
	Config          pinchzoom.Config
	ViewportW       float64
	ViewportH       float64
	ContentW        float64
	ContentH        float64
	FrameMS         float64
	MaxFrames       int
	IncludeUpdates  bool
	ScriptName      string
	ScriptExtension string
}

// eventRecord is one line of the trace.
type eventRecord struct {
	Frame   int     `json:"frame"`
	TimeMS  float64 `json:"time_ms"`
	Type    string  `json:"type"`
	Touches int     `json:"touches"`
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// traceReport is the result of one replay.
type traceReport struct {
	RunID     string          `json:"run_id"`
	Script    string          `json:"script"`
	Frames    int             `json:"frames"`
	ElapsedMS float64         `json:"elapsed_ms"`
	Final     eventRecord     `json:"final"`
	Events    []eventRecord   `json:"events"`
	Stats     pinchzoom.Stats `json:"stats"`
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Replay a gesture script and print the event trace",
		Long: `Replay a gesture script ({"steps": [...]}, JSON or YAML) and print every
lifecycle event. With --watch the script is replayed whenever it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: runTraceCommand,
	}
	defaults := pinchzoom.DefaultConfig()
	cmd.Flags().Float64("viewport-width", 300, "Viewport width in pixels")
	cmd.Flags().Float64("viewport-height", 300, "Viewport height in pixels")
	cmd.Flags().Float64("content-width", 600, "Native content width in pixels")
	cmd.Flags().Float64("content-height", 600, "Native content height in pixels")
	cmd.Flags().Float64("frame-ms", defaultFrameMS, "Simulated frame interval in milliseconds")
	cmd.Flags().Int("max-frames", defaultMaxFrames, "Abort replays running longer than this")
	cmd.Flags().Float64("tap-zoom", defaults.TapZoomFactor, "Zoom reached by a double-tap")
	cmd.Flags().Float64("zoom-out-factor", defaults.ZoomOutFactor, "Release below this zoom animates back to 1")
	cmd.Flags().Float64("min-zoom", defaults.MinZoom, "Minimum zoom")
	cmd.Flags().Float64("max-zoom", defaults.MaxZoom, "Maximum zoom")
	cmd.Flags().Duration("animation", defaults.AnimationDuration, "Programmatic animation duration")
	cmd.Flags().Bool("lock-axis", false, "Lock each pan step to its dominant axis")
	cmd.Flags().Bool("updates", false, "Include per-frame update events in the trace")
	cmd.Flags().Bool("watch", false, "Replay again whenever the script file changes")
	cmd.Flags().Duration("debounce", DefaultWatchDebounce, "Debounce interval for --watch")
	return cmd
}

func optionsFromFlags(cmd *cobra.Command, path string) (traceOptions, error) {
	f := cmd.Flags()
	var opts traceOptions
	var err error
	get := func(name string, dst *float64) {
		if err == nil {
			*dst, err = f.GetFloat64(name)
		}
	}
	get("viewport-width", &opts.ViewportW)
	get("viewport-height", &opts.ViewportH)
	get("content-width", &opts.ContentW)
	get("content-height", &opts.ContentH)
	get("frame-ms", &opts.FrameMS)
	get("tap-zoom", &opts.Config.TapZoomFactor)
	get("zoom-out-factor", &opts.Config.ZoomOutFactor)
	get("min-zoom", &opts.Config.MinZoom)
	get("max-zoom", &opts.Config.MaxZoom)
	if err != nil {
		return opts, err
	}
	if opts.Config.AnimationDuration, err = f.GetDuration("animation"); err != nil {
		return opts, err
	}
	if opts.Config.LockDragAxis, err = f.GetBool("lock-axis"); err != nil {
		return opts, err
	}
	if opts.IncludeUpdates, err = f.GetBool("updates"); err != nil {
		return opts, err
	}
	if opts.MaxFrames, err = f.GetInt("max-frames"); err != nil {
		return opts, err
	}
	opts.ScriptName = path
	opts.ScriptExtension = strings.ToLower(filepath.Ext(path))
	return opts, nil
}

func runTraceCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := optionsFromFlags(cmd, path)
	if err != nil {
		return err
	}
	jsonMode, _ := cmd.Flags().GetBool("json")
	watch, _ := cmd.Flags().GetBool("watch")
	out := cmd.OutOrStdout()

	replay := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		report, err := runTrace(data, opts)
		if err != nil {
			return err
		}
		return printReport(out, report, jsonMode)
	}

	if !watch {
		return replay()
	}

	report := func(err error) { fmt.Fprintln(cmd.ErrOrStderr(), "pztrace:", err) }
	if err := replay(); err != nil {
		report(err)
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	w, err := newScriptWatcher(path, debounce)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", path)
	w.Run(ctx, replay, report)
	return nil
}

// decodeScript returns the script as JSON. YAML scripts are converted.
func decodeScript(data []byte, ext string) ([]byte, error) {
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml script: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml script: %w", err)
	}
	return out, nil
}

var errTooManyFrames = errors.New("script did not finish")

// runTrace replays a script on a fresh engine and collects the events.
func runTrace(data []byte, opts traceOptions) (*traceReport, error) {
	if opts.FrameMS <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %v", opts.FrameMS)
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = defaultMaxFrames
	}
	jsonData, err := decodeScript(data, opts.ScriptExtension)
	if err != nil {
		return nil, err
	}
	runner, err := pinchzoom.LoadScript(jsonData)
	if err != nil {
		return nil, err
	}

	clock := &pinchzoom.ManualClock{}
	geom := pinchzoom.FixedGeometry{
		Viewport: pinchzoom.Size{Width: opts.ViewportW, Height: opts.ViewportH},
		Content:  pinchzoom.Size{Width: opts.ContentW, Height: opts.ContentH},
	}
	engine, err := pinchzoom.New(opts.Config, geom, pinchzoom.WithClock(clock))
	if err != nil {
		return nil, err
	}

	report := &traceReport{RunID: uuid.NewString(), Script: opts.ScriptName}
	frame := 0
	record := func(ev pinchzoom.Event) {
		if ev.Type == pinchzoom.EventUpdate && !opts.IncludeUpdates {
			return
		}
		report.Events = append(report.Events, recordOf(frame, clock.Now(), ev.Type.String(), len(ev.Touches), ev.Transform))
	}
	for t := pinchzoom.EventZoomStart; t <= pinchzoom.EventUpdate; t++ {
		engine.On(t, record)
	}
	engine.SetScriptRunner(runner)

	settle := 0
	for !runner.Done() || !engine.Idle() {
		if frame >= opts.MaxFrames {
			return nil, fmt.Errorf("%w after %d frames", errTooManyFrames, frame)
		}
		if runner.Done() {
			settle++
			if settle > settleFrames {
				return nil, fmt.Errorf("%w: engine still busy %d frames after the last step", errTooManyFrames, settleFrames)
			}
		}
		frame++
		engine.FrameTick(clock.Advance(opts.FrameMS))
	}
	// One more tick publishes the final update.
	frame++
	engine.FrameTick(clock.Advance(opts.FrameMS))

	report.Frames = frame
	report.ElapsedMS = clock.Now()
	report.Final = recordOf(frame, clock.Now(), "final", 0, engine.Transform())
	report.Stats = engine.Stats()
	engine.LogStats()
	return report, nil
}

func recordOf(frame int, now float64, typ string, touches int, t pinchzoom.Transform) eventRecord {
	return eventRecord{
		Frame:   frame,
		TimeMS:  now,
		Type:    typ,
		Touches: touches,
		Zoom:    t.ZoomFactor,
		OffsetX: t.OffsetX,
		OffsetY: t.OffsetY,
	}
}

func printReport(w io.Writer, r *traceReport, jsonMode bool) error {
	if jsonMode {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "run %s  %s  (%d frames, %s)\n", r.RunID, r.Script, r.Frames,
		time.Duration(r.ElapsedMS*float64(time.Millisecond)).Round(time.Millisecond))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tTIME\tEVENT\tTOUCHES\tZOOM\tOFFSET")
	for _, ev := range append(r.Events, r.Final) {
		fmt.Fprintf(tw, "%d\t%.1fms\t%s\t%d\t%.4f\t(%.2f, %.2f)\n",
			ev.Frame, ev.TimeMS, ev.Type, ev.Touches, ev.Zoom, ev.OffsetX, ev.OffsetY)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, r.Stats.String())
	return err
}
