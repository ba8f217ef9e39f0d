package wizard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/input"
	"github.com/Jajcus/badumtss-machine/internal/midi"
	"github.com/Jajcus/badumtss-machine/internal/preset"
)

// Session drives one keymap authoring run: pick a device and a preset,
// bind keys to notes with audible preview, save the result.
type Session struct {
	log     *zap.Logger
	keymap  *Keymap
	path    string
	presets *preset.Library
	sources []input.SourceEntry
	player  midi.Player

	source input.Source
	preset *preset.Preset

	in  *bufio.Scanner
	out io.Writer
}

// NewSession creates an authoring session over the given devices and
// preset library. The player may be nil; previews are then skipped.
func NewSession(path string, presets *preset.Library, sources []input.SourceEntry,
	player midi.Player, in io.Reader, out io.Writer, log *zap.Logger) (*Session, error) {

	keymap, err := OpenKeymap(path)
	if err != nil {
		return nil, err
	}
	return &Session{
		log:     log,
		keymap:  keymap,
		path:    path,
		presets: presets,
		sources: sources,
		player:  player,
		in:      bufio.NewScanner(in),
		out:     out,
	}, nil
}

// PlayNote previews one note using the current preset's settings with the
// keymap defaults as fallback.
func (s *Session) PlayNote(note int) {
	if s.player == nil {
		return
	}
	channel := s.settingOrDefault("channel", 1)
	if channel < 1 || channel > 16 {
		channel = 1
	}
	velocity := s.settingOrDefault("velocity", 127)
	if velocity < 0 || velocity > 127 {
		velocity = 127
	}
	msg := midi.NoteOn{Channel: uint8(channel), Note: uint8(note), Velocity: uint8(velocity)}
	if err := s.player.HandleMessage(msg); err != nil {
		s.log.Warn("cannot preview note", zap.Error(err))
	}
}

func (s *Session) settingOrDefault(name string, def int) int {
	if s.preset != nil {
		if v, ok := s.preset.Settings[name]; ok {
			return v
		}
	}
	if v, ok := s.keymap.Defaults()[name]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Run executes the interactive flow until the user quits.
func (s *Session) Run(ctx context.Context) error {
	source, err := s.selectSource()
	if err != nil || source == nil {
		return err
	}
	s.source = source
	if err := source.Start(ctx); err != nil {
		return fmt.Errorf("cannot start input device: %w", err)
	}
	defer source.Close()
	fmt.Fprintf(s.out, "\nSelected device: %s\n", source.Name())

	p, err := s.selectPreset(!s.keymap.Saved())
	if err != nil || p == nil {
		return err
	}
	s.preset = p
	fmt.Fprintf(s.out, "\nSelected preset: %s\n", p.Name)

	if !s.keymap.Saved() {
		if err := s.configureFromPreset(ctx); err != nil {
			return err
		}
	}
	return s.mainMenu(ctx)
}

func (s *Session) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// selectItem presents a numbered list; returns the chosen index or ok=false
// for quit/EOF.
func (s *Session) selectItem(items []string, prompt string) (int, bool) {
	for {
		fmt.Fprintf(s.out, "\n%s\n", prompt)
		for i, item := range items {
			fmt.Fprintf(s.out, " %d. %s\n", i+1, item)
		}
		fmt.Fprintln(s.out, " 0. Quit")
		answer, ok := s.ask("> ")
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			continue
		}
		if n == 0 {
			return 0, false
		}
		if n >= 1 && n <= len(items) {
			return n - 1, true
		}
	}
}

func (s *Session) selectSource() (input.Source, error) {
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no input device found")
	}
	sorted := make([]input.SourceEntry, len(s.sources))
	copy(sorted, s.sources)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source.Name() < sorted[j].Source.Name()
	})
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.Source.Name()
	}
	i, ok := s.selectItem(names, "Choose the input device:")
	if !ok {
		return nil, nil
	}
	return sorted[i].Source, nil
}

func (s *Session) selectPreset(initialOnly bool) (*preset.Preset, error) {
	var choice []*preset.Preset
	if initialOnly {
		choice = s.presets.Initial()
	} else {
		for _, name := range s.presets.Names() {
			p, _ := s.presets.Get(name)
			choice = append(choice, p)
		}
	}
	if len(choice) == 0 {
		return nil, fmt.Errorf("no presets available")
	}
	names := make([]string, len(choice))
	for i, p := range choice {
		names[i] = p.Name
	}
	i, ok := s.selectItem(names, "Choose the preset:")
	if !ok {
		return nil, nil
	}
	return choice[i], nil
}

// configureFromPreset walks every note of the preset and binds a key to
// each, copying the preset settings into the keymap defaults first.
func (s *Session) configureFromPreset(ctx context.Context) error {
	s.keymap.ApplySettings(s.preset)
	for _, note := range sortedNotes(s.preset.NoteMap) {
		fmt.Fprintf(s.out, "\nPress key for note %3d: %s ", note, s.preset.NoteMap[note])
		keyName, err := s.source.ReadKey(ctx)
		if err != nil {
			return nil
		}
		fmt.Fprintf(s.out, "[%s]\n", keyName)
		s.keymap.Bind(keyName, note, s.preset)
		s.PlayNote(note)
	}
	return nil
}

func (s *Session) bindMenu(ctx context.Context) error {
	notes := sortedNotes(s.preset.NoteMap)
	items := make([]string, len(notes))
	for i, n := range notes {
		items[i] = fmt.Sprintf("%3d: %s", n, s.preset.NoteMap[n])
	}
	i, ok := s.selectItem(items, "Select note:")
	if !ok {
		return nil
	}
	note := notes[i]
	fmt.Fprintf(s.out, "\nPress key for note %3d: %s ", note, s.preset.NoteMap[note])
	keyName, err := s.source.ReadKey(ctx)
	if err != nil {
		return nil
	}
	fmt.Fprintf(s.out, "[%s]\n", keyName)
	s.keymap.Bind(keyName, note, s.preset)
	s.PlayNote(note)
	return nil
}

func (s *Session) unbindMenu() {
	full, _ := s.presets.Get("Full")
	bindings := s.keymap.Bindings(s.preset, full)
	items := make([]string, len(bindings))
	for i, b := range bindings {
		items[i] = fmt.Sprintf("%s: %d %s", b.Key, b.Note, b.Descr)
	}
	i, ok := s.selectItem(items, "Select binding to remove:")
	if !ok {
		return
	}
	s.keymap.Unbind(bindings[i].Key)
}

func (s *Session) showBindings() {
	defaults := s.keymap.Defaults()
	if len(defaults) > 0 {
		fmt.Fprintf(s.out, "\nGlobal settings:\n\n")
		var names []string
		for name := range defaults {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(s.out, " %s=%s\n", name, defaults[name])
		}
	}
	fmt.Fprintf(s.out, "\nBindings:\n\n")
	full, _ := s.presets.Get("Full")
	for _, b := range s.keymap.Bindings(s.preset, full) {
		fmt.Fprintf(s.out, " %-16s %3d  %s\n", b.Key, b.Note, b.Descr)
	}
	fmt.Fprintln(s.out)
}

func (s *Session) presetMenu() error {
	p, err := s.selectPreset(false)
	if err != nil || p == nil {
		return err
	}
	fmt.Fprintf(s.out, "\nSelected preset: %s\n", p.Name)
	s.preset = p
	return nil
}

func (s *Session) saveMenu() {
	filename, ok := s.ask(fmt.Sprintf("File name: [%s] > ", s.path))
	if !ok {
		return
	}
	if filename == "" {
		filename = s.path
	}
	if err := s.keymap.Save(filename); err != nil {
		fmt.Fprintf(s.out, "Cannot save: %v\n", err)
	}
}

func (s *Session) mainMenu(ctx context.Context) error {
	options := []string{
		"Show current bindings",
		"Unbind key",
		"Change/add binding",
		"Change current preset",
		"Save",
	}
	for {
		i, ok := s.selectItem(options, "Select:")
		if !ok {
			if s.keymap.Saved() {
				return nil
			}
			answer, alive := s.ask("Changes not saved. Are you sure? [y/N] > ")
			if !alive || strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
				return nil
			}
			continue
		}
		var err error
		switch i {
		case 0:
			s.showBindings()
		case 1:
			s.unbindMenu()
		case 2:
			err = s.bindMenu(ctx)
		case 3:
			err = s.presetMenu()
		case 4:
			s.saveMenu()
		}
		if err != nil {
			return err
		}
	}
}

func sortedNotes(m map[int]string) []int {
	notes := make([]int, 0, len(m))
	for n := range m {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	return notes
}
