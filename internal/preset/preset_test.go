package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jajcus/badumtss-machine/internal/config"
)

func loadLibrary(t *testing.T, text string) *Library {
	t.Helper()
	cfg, err := config.Parse([]byte(text))
	require.NoError(t, err)
	return LoadLibrary(cfg, zap.NewNop())
}

func TestParseIntegerList(t *testing.T) {
	log := zap.NewNop()
	assert.Equal(t, []int{1, 3, 5, 6, 7}, ParseIntegerList("1,3,5-7", log))
	assert.Equal(t, []int{2}, ParseIntegerList("2-2", log))
	assert.Equal(t, []int{2}, ParseIntegerList("x,2", log))
	assert.Equal(t, []int{4}, ParseIntegerList("4,9-x", log))
	assert.Empty(t, ParseIntegerList("nope", log))
}

func TestLibrarySimplePreset(t *testing.T) {
	l := loadLibrary(t, `
[drums]
channel = 10
velocity = 100
36 = Bass Drum
38 = Snare
`)
	p, ok := l.Get("drums")
	require.True(t, ok)
	assert.Equal(t, "drums", p.Name)
	assert.Equal(t, map[int]string{36: "Bass Drum", 38: "Snare"}, p.NoteMap)
	assert.Equal(t, map[string]int{"channel": 10, "velocity": 100}, p.Settings)
	assert.False(t, p.Initial)
}

func TestLibraryNonNoteKeysExcluded(t *testing.T) {
	l := loadLibrary(t, `
[odd]
36 = Bass Drum
200 = out of range
-1 = negative
include =
initial_template = yes
`)
	p, ok := l.Get("odd")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "Bass Drum"}, p.NoteMap)
	assert.True(t, p.Initial)
}

func TestLibraryIncludeLayering(t *testing.T) {
	l := loadLibrary(t, `
[base]
channel = 10
36 = Bass Drum
38 = Snare

[derived]
include = base
channel = 9
38 = Electric Snare
40 = Clap
`)
	p, ok := l.Get("derived")
	require.True(t, ok)
	assert.Equal(t, map[int]string{
		36: "Bass Drum",
		38: "Electric Snare",
		40: "Clap",
	}, p.NoteMap)
	assert.Equal(t, 9, p.Settings["channel"])

	// the included preset is untouched
	base, _ := l.Get("base")
	assert.Equal(t, "Snare", base.NoteMap[38])
	assert.Equal(t, 10, base.Settings["channel"])
}

func TestLibraryIncludeNoteFilter(t *testing.T) {
	l := loadLibrary(t, `
[base]
36 = Bass Drum
38 = Snare
40 = Clap
42 = Hi-Hat

[subset]
include = base:36,40-42
`)
	p, ok := l.Get("subset")
	require.True(t, ok)
	assert.Equal(t, map[int]string{
		36: "Bass Drum",
		40: "Clap",
		42: "Hi-Hat",
	}, p.NoteMap)
}

func TestLibraryFilteredNoteMissing(t *testing.T) {
	l := loadLibrary(t, `
[base]
36 = Bass Drum

[subset]
include = base:36,99
`)
	p, ok := l.Get("subset")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "Bass Drum"}, p.NoteMap)
}

func TestLibraryMultipleIncludes(t *testing.T) {
	l := loadLibrary(t, `
[kicks]
36 = Bass Drum

[snares]
38 = Snare

[kit]
include = kicks ; snares
`)
	p, ok := l.Get("kit")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "Bass Drum", 38: "Snare"}, p.NoteMap)
}

func TestLibraryIncludeCycleTerminates(t *testing.T) {
	l := loadLibrary(t, `
[a]
36 = From A
include = b

[b]
38 = From B
include = a
`)
	p, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "From A", 38: "From B"}, p.NoteMap)

	p, ok = l.Get("b")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "From A", 38: "From B"}, p.NoteMap)
}

func TestLibraryResolutionIsIdempotent(t *testing.T) {
	text := `
[base]
channel = 10
36 = Bass Drum

[derived]
include = base
38 = Snare
`
	first := loadLibrary(t, text)
	second := loadLibrary(t, text)
	for _, name := range first.Names() {
		a, _ := first.Get(name)
		b, _ := second.Get(name)
		assert.Equal(t, a.NoteMap, b.NoteMap, name)
		assert.Equal(t, a.Settings, b.Settings, name)
	}
}

func TestLibraryMissingIncludeSkipped(t *testing.T) {
	l := loadLibrary(t, `
[solo]
include = no_such_preset
36 = Bass Drum
`)
	p, ok := l.Get("solo")
	require.True(t, ok)
	assert.Equal(t, map[int]string{36: "Bass Drum"}, p.NoteMap)
}

func TestLibraryNamesAndInitial(t *testing.T) {
	l := loadLibrary(t, `
[zebra]
36 = Bass Drum

[alpha]
initial_template = true
38 = Snare

[mid]
initial_template = true
40 = Clap
`)
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, l.Names())

	initial := l.Initial()
	require.Len(t, initial, 2)
	assert.Equal(t, "alpha", initial[0].Name)
	assert.Equal(t, "mid", initial[1].Name)

	_, ok := l.Get("missing")
	assert.False(t, ok)
}
