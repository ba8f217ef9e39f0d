package midi

// Player realizes MIDI messages as sound. Start and Stop bracket the
// translation engine's active period; HandleMessage may be called from
// multiple translation loops and implementations must tolerate that.
type Player interface {
	// Start prepares the player for message delivery.
	Start() error

	// Stop releases the player's resources. No messages are delivered
	// after Stop returns.
	Stop()

	// HandleMessage plays one message.
	HandleMessage(msg Message) error
}
