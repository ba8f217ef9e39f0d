// badumtss-machine plays MIDI notes with any input device: keyboards,
// joysticks, anything that emits key, button or axis events.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
	"github.com/Jajcus/badumtss-machine/internal/input"
	_ "github.com/Jajcus/badumtss-machine/internal/input/evdev" // Register evdev source type
	"github.com/Jajcus/badumtss-machine/internal/logging"
	"github.com/Jajcus/badumtss-machine/internal/midi"
	"github.com/Jajcus/badumtss-machine/internal/preset"
	"github.com/Jajcus/badumtss-machine/internal/wizard"
)

// introNotes is the short riff played on startup; zeros are rests.
var introNotes = []uint8{0, 38, 38, 0, 49}

func playIntro(ctx context.Context, player midi.Player) {
	for _, note := range introNotes {
		if note != 0 {
			player.HandleMessage(midi.NoteOn{Channel: 10, Note: note, Velocity: 127})
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func run() error {
	var (
		debug        = flag.Bool("debug", false, "show debugging messages")
		quiet        = flag.Bool("quiet", false, "show only error messages")
		configPath   = flag.String("config", "badumtss.conf", "configuration file")
		presetsPath  = flag.String("presets", "presets.conf", "preset library file")
		playerArg    = flag.String("player", "", "select specific player section from config file")
		inputArg     = flag.String("input-device", "", "select specific input section from config file")
		keymapWizard = flag.String("keymap-wizard", "", "build or edit a keymap file")
	)
	flag.Parse()

	log, err := logging.New(*debug, *quiet)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player, err := midi.NewPlayer(cfg, *playerArg, log)
	if err != nil {
		return err
	}
	if player == nil {
		log.Error("no MIDI player available, running silent")
		player = midi.NewNullPlayer(log)
	}
	if err := player.Start(); err != nil {
		log.Error("cannot start player, running silent", zap.Error(err))
		player = midi.NewNullPlayer(log)
	}
	defer player.Stop()

	sources := input.OpenSources(cfg, *inputArg, log)
	if len(sources) == 0 {
		return fmt.Errorf("no input device found")
	}
	defer func() {
		for _, entry := range sources {
			entry.Source.Close()
		}
	}()

	if *keymapWizard != "" {
		return runWizard(ctx, *keymapWizard, *presetsPath, sources, player, log)
	}

	playIntro(ctx, player)

	router := input.NewRouter(player, log)
	for _, entry := range sources {
		keymapCfg := config.NewFile()
		if entry.KeymapPath != "" {
			keymapCfg, err = config.Load(entry.KeymapPath)
			if err != nil {
				log.Warn("cannot load keymap",
					zap.String("path", entry.KeymapPath), zap.Error(err))
				keymapCfg = config.NewFile()
			}
		} else {
			log.Info("no keymap configured for device",
				zap.String("source", entry.Source.Name()))
		}
		handlers := input.LoadKeymap(keymapCfg, entry.Source, log)
		router.AddSource(entry, input.NewDispatcher(handlers, log))
	}

	return router.Run(ctx)
}

func runWizard(ctx context.Context, keymapPath, presetsPath string,
	sources []input.SourceEntry, player midi.Player, log *zap.Logger) error {

	presetCfg, err := config.Load(presetsPath)
	if err != nil {
		return fmt.Errorf("cannot load preset library: %w", err)
	}
	library := preset.LoadLibrary(presetCfg, log)

	session, err := wizard.NewSession(keymapPath, library, sources, player,
		os.Stdin, os.Stdout, log)
	if err != nil {
		return err
	}
	return session.Run(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
