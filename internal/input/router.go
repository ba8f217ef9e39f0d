package input

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jajcus/badumtss-machine/internal/midi"
)

// Router fans events from any number of input sources into a single player.
// Each source gets its own translation loop, so a stalled or closed source
// never delays the others; within one source messages keep receipt order.
type Router struct {
	player midi.Player
	log    *zap.Logger

	routes []route
}

type route struct {
	id         string
	source     Source
	dispatcher *Dispatcher
}

// NewRouter creates a router delivering to the given player.
func NewRouter(player midi.Player, log *zap.Logger) *Router {
	return &Router{player: player, log: log}
}

// AddSource registers one source with the dispatcher built from its keymap.
func (r *Router) AddSource(entry SourceEntry, dispatcher *Dispatcher) {
	r.routes = append(r.routes, route{
		id:         entry.ID,
		source:     entry.Source,
		dispatcher: dispatcher,
	})
}

// Run starts one translation loop per source and blocks until the context
// is cancelled and every loop has terminated. Per-source failures are
// logged and end only that source's loop.
func (r *Router) Run(ctx context.Context) error {
	var g errgroup.Group
	for _, rt := range r.routes {
		rt := rt
		g.Go(func() error {
			r.runSource(ctx, rt)
			return nil
		})
	}
	return g.Wait()
}

func (r *Router) runSource(ctx context.Context, rt route) {
	log := r.log.With(zap.String("source", rt.source.Name()), zap.String("id", rt.id))

	if err := rt.source.Start(ctx); err != nil {
		log.Warn("cannot start input source", zap.Error(err))
		return
	}
	defer rt.source.Close()

	log.Info("input source started", zap.Int("bindings", rt.dispatcher.Len()))

	events := rt.source.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				log.Info("input source closed")
				return
			}
			msg, ok := rt.dispatcher.Dispatch(ev)
			if !ok {
				continue
			}
			if err := r.player.HandleMessage(msg); err != nil {
				log.Warn("cannot deliver message", zap.Error(err))
			}
		}
	}
}
