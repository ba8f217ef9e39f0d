package midi

import (
	"fmt"
	"regexp"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
	"go.uber.org/zap"
)

// PortPlayer sends messages to a system MIDI output port.
type PortPlayer struct {
	log      *zap.Logger
	portName *regexp.Regexp

	mu   sync.Mutex
	port drivers.Out
	send func(gomidi.Message) error
}

// NewPortPlayer creates a player bound to the first available output port
// whose name matches the pattern. An empty pattern matches any port.
func NewPortPlayer(pattern string, log *zap.Logger) (*PortPlayer, error) {
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid port pattern %q: %w", pattern, err)
	}
	return &PortPlayer{log: log, portName: re}, nil
}

// Start resolves the output port and prepares the sender.
func (p *PortPlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var port drivers.Out
	for _, out := range gomidi.GetOutPorts() {
		if p.portName.MatchString(out.String()) {
			port = out
			break
		}
	}
	if port == nil {
		return fmt.Errorf("no MIDI output port matches %q", p.portName)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	p.port = port
	p.send = send
	p.log.Info("MIDI output port opened", zap.String("port", port.String()))
	return nil
}

// Stop releases the port.
func (p *PortPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.port = nil
	p.send = nil
	gomidi.CloseDriver()
}

// HandleMessage sends one message to the output port. The port is a shared
// resource: translation loops for all input sources funnel into it, so
// sending is serialized.
func (p *PortPlayer) HandleMessage(msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return fmt.Errorf("player not started")
	}

	switch m := msg.(type) {
	case NoteOn:
		// gomidi channels are 0-based
		return p.send(gomidi.NoteOn((m.Channel-1)&0x0f, m.Note&0x7f, m.Velocity&0x7f))
	case NoteOff:
		return p.send(gomidi.NoteOff((m.Channel-1)&0x0f, m.Note&0x7f))
	default:
		return fmt.Errorf("unsupported message type %T", msg)
	}
}
