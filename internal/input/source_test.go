package input

import (
	"context"
	"fmt"
)

// fakeSource feeds scripted events through the Source interface.
type fakeSource struct {
	name     string
	ids      []EventIdentity
	ranges   map[EventIdentity][2]float64
	events   chan Event
	startErr error
}

func newFakeSource(name string) *fakeSource {
	return &fakeSource{
		name:   name,
		ranges: map[EventIdentity][2]float64{},
		events: make(chan Event, 64),
	}
}

func (f *fakeSource) withAxis(id EventIdentity, min, max float64) *fakeSource {
	f.ids = append(f.ids, id)
	f.ranges[id] = [2]float64{min, max}
	return f
}

func (f *fakeSource) Name() string                    { return f.name }
func (f *fakeSource) Identities() []EventIdentity     { return f.ids }
func (f *fakeSource) Events() <-chan Event            { return f.events }
func (f *fakeSource) Start(ctx context.Context) error { return f.startErr }
func (f *fakeSource) Close() error                    { return nil }

func (f *fakeSource) AxisRange(id EventIdentity) (float64, float64, bool) {
	r, ok := f.ranges[id]
	return r[0], r[1], ok
}

func (f *fakeSource) ReadKey(ctx context.Context) (string, error) {
	return "", fmt.Errorf("not supported")
}
