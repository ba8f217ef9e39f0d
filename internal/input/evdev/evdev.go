// Package evdev adapts Linux event devices (/dev/input/event*) to the
// input.Source interface.
package evdev

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	goevdev "github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
	"github.com/Jajcus/badumtss-machine/internal/input"
)

func init() {
	input.RegisterSourceType("evdev", Factory)
}

// key press states reported in InputEvent.Value
const (
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// keyNames maps key codes back to their KEY_*/BTN_* names.
var keyNames = func() map[goevdev.EvCode]string {
	m := make(map[goevdev.EvCode]string, len(goevdev.KEYFromString))
	for name, code := range goevdev.KEYFromString {
		if _, taken := m[code]; !taken {
			m[code] = name
		}
	}
	return m
}()

// Device is one opened event device.
type Device struct {
	name string
	dev  *goevdev.InputDevice
	log  *zap.Logger

	identities []input.EventIdentity
	absinfo    map[uint16]goevdev.AbsInfo

	events    chan input.Event
	closeOnce sync.Once
}

// NewDevice wraps an opened evdev device.
func NewDevice(dev *goevdev.InputDevice, log *zap.Logger) (*Device, error) {
	name, err := dev.Name()
	if err != nil {
		return nil, fmt.Errorf("cannot read device name: %w", err)
	}

	d := &Device{
		name:    fmt.Sprintf("%s (%s)", name, dev.Path()),
		dev:     dev,
		log:     log,
		absinfo: make(map[uint16]goevdev.AbsInfo),
		events:  make(chan input.Event, 32),
	}

	for _, t := range dev.CapableTypes() {
		switch t {
		case goevdev.EV_KEY:
			for _, code := range dev.CapableEvents(t) {
				d.identities = append(d.identities,
					input.EventIdentity{Class: input.ClassKey, Code: uint16(code)})
			}
		case goevdev.EV_ABS:
			infos, err := dev.AbsInfos()
			if err != nil {
				log.Warn("cannot retrieve absinfo", zap.String("device", d.name), zap.Error(err))
				continue
			}
			for code, info := range infos {
				d.absinfo[uint16(code)] = info
				d.identities = append(d.identities,
					input.EventIdentity{Class: input.ClassAxis, Code: uint16(code)})
			}
		}
	}

	return d, nil
}

func (d *Device) Name() string { return d.name }

func (d *Device) Identities() []input.EventIdentity { return d.identities }

// AxisRange returns the absolute range the device reports for an axis.
func (d *Device) AxisRange(id input.EventIdentity) (float64, float64, bool) {
	if id.Class != input.ClassAxis {
		return 0, 0, false
	}
	info, ok := d.absinfo[id.Code]
	if !ok {
		return 0, 0, false
	}
	return float64(info.Minimum), float64(info.Maximum), true
}

func (d *Device) Events() <-chan input.Event { return d.events }

// Start launches the read loop. The device is closed and the event channel
// drained shut when the context ends.
func (d *Device) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		d.Close()
	}()
	go d.readLoop()
	return nil
}

func (d *Device) readLoop() {
	defer close(d.events)
	for {
		raw, err := d.dev.ReadOne()
		if err != nil {
			// closed device or read failure, either way we are done
			d.log.Debug("event device read ended", zap.String("device", d.name), zap.Error(err))
			return
		}
		ev, ok := d.convert(raw)
		if !ok {
			continue
		}
		d.events <- ev
	}
}

func (d *Device) convert(raw *goevdev.InputEvent) (input.Event, bool) {
	ts := time.Unix(int64(raw.Time.Sec), int64(raw.Time.Usec)*1000)
	switch raw.Type {
	case goevdev.EV_KEY:
		return input.Event{
			Identity: input.EventIdentity{Class: input.ClassKey, Code: uint16(raw.Code)},
			Time:     ts,
			Pressed:  raw.Value == keyPress || raw.Value == keyRepeat,
			Repeat:   raw.Value == keyRepeat,
		}, true
	case goevdev.EV_ABS:
		return input.Event{
			Identity: input.EventIdentity{Class: input.ClassAxis, Code: uint16(raw.Code)},
			Time:     ts,
			Value:    float64(raw.Value),
		}, true
	default:
		return input.Event{}, false
	}
}

// ReadKey returns the name of the next key pressed on the device.
func (d *Device) ReadKey(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-d.events:
			if !ok {
				return "", fmt.Errorf("device %s closed", d.name)
			}
			if ev.Identity.Class != input.ClassKey || !ev.Pressed || ev.Repeat {
				continue
			}
			name, ok := keyNames[goevdev.EvCode(ev.Identity.Code)]
			if !ok {
				name = fmt.Sprintf("%d", ev.Identity.Code)
			}
			return name, nil
		}
	}
}

// Close releases the device. Safe to call more than once.
func (d *Device) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.dev.Close()
	})
	return err
}

// Factory creates devices for one "evdev" configuration section. The
// section's name key is a regular expression selecting devices by their
// reported name; every match yields one source. A section matching nothing
// is not an error.
func Factory(cfg *config.File, section string, log *zap.Logger) ([]input.Source, error) {
	pattern := ".*"
	if s := cfg.Section(section); s != nil {
		if v := s.Value("name"); v != "" {
			pattern = v
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("[%s]: invalid device name pattern: %w", section, err)
	}

	paths, err := goevdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("[%s]: cannot list input devices: %w", section, err)
	}

	var sources []input.Source
	for _, p := range paths {
		if !re.MatchString(p.Name) {
			continue
		}
		dev, err := goevdev.Open(p.Path)
		if err != nil {
			log.Warn("cannot open event device",
				zap.String("section", section), zap.String("path", p.Path), zap.Error(err))
			continue
		}
		source, err := NewDevice(dev, log)
		if err != nil {
			log.Warn("cannot load event device",
				zap.String("section", section), zap.String("path", p.Path), zap.Error(err))
			dev.Close()
			continue
		}
		sources = append(sources, source)
	}
	if len(sources) == 0 {
		log.Debug("no device matches name pattern",
			zap.String("section", section), zap.String("pattern", pattern))
	}
	return sources, nil
}
