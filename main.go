package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"mapassist/pkg/game/devtools"
	"mapassist/pkg/game/feed"
	"mapassist/pkg/game/generator"
	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/menu"
	"mapassist/pkg/game/minimap"
	"mapassist/pkg/game/names"
	"mapassist/pkg/game/renderer"
	"mapassist/pkg/game/renderer/ebiten"
	"mapassist/pkg/game/renderer/tui"
	"mapassist/pkg/game/server"
	"mapassist/pkg/game/session"
	"mapassist/pkg/game/settings"
)

type options struct {
	levelPath    string
	devLevel     bool
	genArea      int
	seed         int64
	settingsPath string
	namesPath    string
	outPath      string
	dumpDir      string
	schema       string
	serveAddr    string
	feedURL      string
	mapServer    string
	window       bool
	preview      bool
	interval     time.Duration
	rotate       bool
	bindings     []string
	keys         bool
	verbose      bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.levelPath, "level", "", "level JSON document to draw")
	flag.BoolVar(&o.devLevel, "dev", false, "draw the built-in developer test level")
	flag.IntVar(&o.genArea, "generate", 0, "draw a generated level for this area code")
	flag.Int64Var(&o.seed, "seed", 1, "seed for -generate")
	flag.StringVar(&o.settingsPath, "settings", "", "render settings JSON file")
	flag.StringVar(&o.namesPath, "names", "", "gettext .po file overriding the built-in area and object names")
	flag.StringVar(&o.outPath, "out", "", "write one rendered frame to this PNG file")
	flag.StringVar(&o.dumpDir, "dump", "", "write a text dump of the level to map.txt in this directory")
	flag.StringVar(&o.schema, "schema", "", "print the JSON schema for \"level\" or \"settings\" and exit")
	flag.StringVar(&o.serveAddr, "serve", "", "serve the minimap over HTTP on this address, e.g. :8080")
	flag.StringVar(&o.feedURL, "feed", "", "websocket URL of the game state feed")
	flag.StringVar(&o.mapServer, "mapserver", "", "base URL of the map server; levels are fetched on area change")
	flag.BoolVar(&o.window, "window", false, "show the minimap in a window")
	flag.BoolVar(&o.preview, "preview", false, "show the minimap in the terminal")
	flag.DurationVar(&o.interval, "interval", time.Second, "terminal preview refresh interval")
	flag.BoolVar(&o.rotate, "rotate", false, "rotate the minimap")
	flag.Func("bind", "rebind a window key as action=key, e.g. rotate=t (repeatable)", func(v string) error {
		o.bindings = append(o.bindings, v)
		return nil
	})
	flag.BoolVar(&o.keys, "keys", false, "print the window key bindings and exit")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	return o
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func main() {
	o := parseFlags()

	if o.schema != "" {
		if err := devtools.WriteSchema(os.Stdout, o.schema); err != nil {
			color.Error.Println(err)
			os.Exit(2)
		}
		return
	}

	if err := menu.Apply(o.bindings); err != nil {
		color.Error.Println(err)
		os.Exit(2)
	}
	if o.keys {
		for _, line := range menu.HelpLines() {
			fmt.Println(line)
		}
		return
	}

	log := newLogger(o.verbose)
	if err := run(o, log); err != nil {
		log.WithError(err).Fatal("Map assist stopped")
	}
}

func run(o options, log *logrus.Logger) error {
	s, err := settings.Load(o.settingsPath)
	if err != nil {
		return err
	}
	if o.rotate {
		s.Rotate = true
	}

	tables := names.Default()
	if o.namesPath != "" {
		if tables, err = names.Load(o.namesPath); err != nil {
			return fmt.Errorf("load names: %w", err)
		}
	}

	mm := minimap.New(minimap.WithNamer(tables), minimap.WithLogger(log))

	var fetcher session.Fetcher
	if o.mapServer != "" {
		fetcher = mapdata.NewClient(o.mapServer)
	}
	tracker := session.NewTracker(fetcher, mm, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loadInitialLevel(ctx, o, tracker); err != nil {
		return err
	}

	if err := writeOneShots(o, s, mm, tracker, tables); err != nil {
		return err
	}

	if !o.window && !o.preview && o.serveAddr == "" && o.feedURL == "" {
		if o.outPath == "" && o.dumpDir == "" {
			flag.Usage()
		}
		return nil
	}

	comp := &renderer.Compositor{Minimap: mm, Levels: tracker, Names: tables}
	g, ctx := errgroup.WithContext(ctx)

	if o.feedURL != "" {
		f := feed.New(o.feedURL, log)
		g.Go(func() error { return f.Run(ctx) })
		g.Go(func() error { return tracker.Run(ctx, f.Updates()) })
	}

	if o.serveAddr != "" {
		srv := &http.Server{Addr: o.serveAddr, Handler: server.New(mm, tracker, s, log)}
		g.Go(func() error {
			log.WithField("addr", o.serveAddr).Info("Serving minimap")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdown)
		})
	}

	if o.preview {
		preview := tui.New(s)
		preview.Interval = o.interval
		if err := preview.Init(); err != nil {
			return err
		}
		g.Go(func() error { return preview.Run(ctx, comp) })
	}

	// the window loop has to own the main goroutine
	if o.window {
		viewer := ebiten.New(s, log)
		if err := viewer.Init(); err != nil {
			return err
		}
		if err := viewer.Run(ctx, comp); err != nil {
			cancel()
			g.Wait()
			return err
		}
		cancel()
	}

	return g.Wait()
}

// loadInitialLevel installs the level given on the command line, if any.
func loadInitialLevel(ctx context.Context, o options, tracker *session.Tracker) error {
	switch {
	case o.devLevel:
		tracker.SetLevel(devtools.DevLevel())
		return tracker.Observe(ctx, devtools.DevState())
	case o.genArea > 0:
		level, state := generator.Generate(mapdata.AreaID(o.genArea), o.seed)
		tracker.SetLevel(level)
		return tracker.Observe(ctx, state)
	case o.levelPath != "":
		level, err := mapdata.LoadFile(o.levelPath)
		if err != nil {
			return err
		}
		tracker.SetLevel(level)
		return tracker.Observe(ctx, mapdata.GameStateSnapshot{Area: level.Area})
	}
	return nil
}

// writeOneShots handles -out and -dump against the level loaded at startup.
func writeOneShots(o options, s settings.RenderSettings, mm *minimap.Renderer, tracker *session.Tracker, tables *names.Tables) error {
	if o.outPath == "" && o.dumpDir == "" {
		return nil
	}
	level, state := tracker.Current()
	if level == nil {
		return errors.New("-out and -dump need -level, -dev or -generate")
	}

	if o.outPath != "" {
		frame := mm.Render(level, state, s)
		if frame.Bounds().Empty() {
			return errors.New("level has nothing to draw")
		}
		if err := devtools.SavePNG(o.outPath, frame); err != nil {
			return err
		}
		color.Green.Printf("Wrote %s (%dx%d)\n", o.outPath, frame.Bounds().Dx(), frame.Bounds().Dy())
	}

	if o.dumpDir != "" {
		path, err := devtools.DumpLevelToFile(o.dumpDir, level, state, tables)
		if err != nil {
			return err
		}
		color.Green.Printf("Wrote %s\n", path)
	}
	return nil
}
