package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/circled/audio"
	"github.com/lixenwraith/circled/config"
	"github.com/lixenwraith/circled/editor"
	"github.com/lixenwraith/circled/modes"
	"github.com/lixenwraith/circled/render"
)

// options are the parsed command-line flags; set records which were given explicitly
type options struct {
	configPath string
	sound      bool
	debug      bool
	pngPath    string
	set        map[string]bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("circled", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to TOML config file")
	fs.BoolVar(&opts.sound, "sound", false, "Enable audio cues")
	fs.BoolVar(&opts.debug, "debug", false, "Write debug log to the log directory")
	fs.StringVar(&opts.pngPath, "png", "", "Write the final frame as PNG to this path on exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig layers file, environment and explicit flags, then validates
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.set["config"])
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(config.DefaultEnvFile); err != nil {
		return nil, err
	}
	if opts.set["sound"] {
		cfg.Audio.Enabled = opts.sound
	}
	if opts.set["debug"] {
		cfg.Log.Debug = opts.debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "circled: %v\n", err)
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "circled: stdin and stdout must be a terminal")
		os.Exit(1)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "circled: %v\n", err)
		os.Exit(1)
	}

	logFile := setupLogging(cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}
	log.Printf("circled: starting (config %q, audio %v)", cfg.Source, cfg.Audio.Enabled)

	sum, err := run(cfg, opts.pngPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "circled: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
	fmt.Println(renderSummary(sum))
}

// run owns the screen for the whole session and returns once the user quits
func run(cfg *config.Config, pngPath string) (summary, error) {
	palette, err := render.ParsePalette(cfg.Colors.Background, cfg.Colors.Normal, cfg.Colors.Selected, cfg.Colors.Status)
	if err != nil {
		return summary{}, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return summary{}, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return summary{}, fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic recovery: restore the terminal before the trace so it stays readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCIRCLED CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	grid := render.Grid{CellW: cfg.Surface.CellWidth, CellH: cfg.Surface.CellHeight}
	termRenderer := render.NewTerminal(screen, grid, palette)
	sw, sh := termRenderer.SurfaceSize()
	raster := render.NewRaster(int(math.Ceil(sw)), int(math.Ceil(sh)), palette)
	defer raster.Close()

	sounds := audio.NewSoundManager(cfg.AudioConfig())
	if err := sounds.Initialize(); err != nil {
		// Non-fatal, the editor works without sound
		log.Printf("circled: audio initialization failed: %v", err)
	}
	defer sounds.Cleanup()

	ctrl, err := editor.New(cfg.EditorConfig(), render.NewMulti(termRenderer, raster))
	if err != nil {
		return summary{}, err
	}
	ctrl.Subscribe(logChange)
	ctrl.Subscribe(sounds.Observer())

	handler := modes.NewInputHandler(ctrl, screen, grid)
	handler.OnResize(func(cols, rows int) {
		w, h := grid.Surface(cols, rows)
		raster.Resize(int(math.Ceil(w)), int(math.Ceil(h)))
		log.Printf("circled: resized to %dx%d cells", cols, rows)
	})

	ctrl.Redraw()

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(screen, eventChan, pollerCrashed)

	for ev := range eventChan {
		if !handler.HandleEvent(ev) {
			break
		}
	}

	sum := newSummary(ctrl, handler)
	sum.Frames = raster.Frames()
	if pngPath != "" {
		if err := raster.SavePNG(pngPath); err != nil {
			sum.PNGErr = err
			log.Printf("circled: %v", err)
		} else {
			sum.PNGPath = pngPath
		}
	}
	for st := audio.SoundCreate; st <= audio.SoundResize; st++ {
		sum.Sounds += sounds.PlayCount(st)
	}

	log.Printf("circled: exiting with %d circles", sum.Circles)
	return sum, nil
}

// logChange is the editor observer that traces every mutation
func logChange(ch editor.Change) {
	log.Printf("editor: %s", ch)
}

// pollEvents forwards screen events until the screen is finalized
// A panic restores the terminal before crash runs
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, crash func(r any)) {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			crash(r)
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		out <- ev
	}
}

func pollerCrashed(r any) {
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
