package midi

import "go.uber.org/zap"

// NullPlayer discards every message. It keeps the translation engine
// running when no synthesizer is reachable and doubles as a test player.
type NullPlayer struct {
	log *zap.Logger
}

// NewNullPlayer creates a no-op player.
func NewNullPlayer(log *zap.Logger) *NullPlayer {
	return &NullPlayer{log: log}
}

func (p *NullPlayer) Start() error { return nil }

func (p *NullPlayer) Stop() {}

func (p *NullPlayer) HandleMessage(msg Message) error {
	if p.log != nil {
		p.log.Debug("discarding message", zap.Any("msg", msg))
	}
	return nil
}
