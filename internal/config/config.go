// Package config reads and writes the sectioned text files used throughout
// the application: the main configuration, keymap files and the preset
// library all share the same format. A distinguished "defaults" section
// provides fallback values visible inside every other section.
package config

import (
	"io"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultsSection is the name of the distinguished fallback section.
const DefaultsSection = "defaults"

var loadOptions = ini.LoadOptions{
	Loose: true, // missing files are not an error

	// semicolons separate include lists in preset files, they never
	// start an inline comment
	IgnoreInlineComment: true,
}

// File is one parsed configuration source.
type File struct {
	src *ini.File
}

// Load reads one or more configuration files. Files that do not exist are
// skipped; values from later files override earlier ones.
func Load(paths ...string) (*File, error) {
	if len(paths) == 0 {
		return NewFile(), nil
	}
	first := paths[0]
	rest := make([]interface{}, 0, len(paths)-1)
	for _, p := range paths[1:] {
		rest = append(rest, p)
	}
	src, err := ini.LoadSources(loadOptions, first, rest...)
	if err != nil {
		return nil, err
	}
	return &File{src: src}, nil
}

// Parse reads configuration from a byte slice.
func Parse(data []byte) (*File, error) {
	src, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}
	return &File{src: src}, nil
}

// NewFile returns an empty configuration.
func NewFile() *File {
	return &File{src: ini.Empty(loadOptions)}
}

// Sections returns all sections in file order, excluding the defaults
// section and ini's implicit unnamed section.
func (f *File) Sections() []*Section {
	var out []*Section
	for _, s := range f.src.Sections() {
		if s.Name() == ini.DefaultSection || s.Name() == DefaultsSection {
			continue
		}
		out = append(out, f.wrap(s))
	}
	return out
}

// SectionNames returns the names of all regular sections in file order.
func (f *File) SectionNames() []string {
	var out []string
	for _, s := range f.Sections() {
		out = append(out, s.Name())
	}
	return out
}

// HasSection reports whether a section with the given name exists.
func (f *File) HasSection(name string) bool {
	_, err := f.src.GetSection(name)
	return err == nil
}

// Section returns the named section, or nil if it does not exist.
func (f *File) Section(name string) *Section {
	s, err := f.src.GetSection(name)
	if err != nil {
		return nil
	}
	return f.wrap(s)
}

// Defaults returns the contents of the defaults section. Keys declared
// before any section header count as defaults too.
func (f *File) Defaults() map[string]string {
	out := map[string]string{}
	if s, err := f.src.GetSection(ini.DefaultSection); err == nil {
		for k, v := range s.KeysHash() {
			out[k] = v
		}
	}
	if s, err := f.src.GetSection(DefaultsSection); err == nil {
		for k, v := range s.KeysHash() {
			out[k] = v
		}
	}
	return out
}

// SetKey sets a key in the named section, creating the section as needed.
func (f *File) SetKey(section, key, value string) {
	f.src.Section(section).Key(key).SetValue(value)
}

// DeleteSection removes a section and all its keys.
func (f *File) DeleteSection(name string) {
	f.src.DeleteSection(name)
}

// DeleteKey removes one key from a section, if present.
func (f *File) DeleteKey(section, key string) {
	if s, err := f.src.GetSection(section); err == nil {
		s.DeleteKey(key)
	}
}

// SaveTo writes the configuration to the given path.
func (f *File) SaveTo(path string) error {
	return f.src.SaveTo(path)
}

// WriteTo writes the configuration to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	return f.src.WriteTo(w)
}

func (f *File) wrap(s *ini.Section) *Section {
	return &Section{file: f, s: s}
}

// Section is one named group of key/value pairs.
type Section struct {
	file *File
	s    *ini.Section
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.s.Name()
}

// Keys returns the section's own key names in file order.
func (s *Section) Keys() []string {
	return s.s.KeyStrings()
}

// HasKey reports whether the section itself defines the key.
func (s *Section) HasKey(key string) bool {
	return s.s.HasKey(key)
}

// Values returns the section's own key/value pairs, without defaults.
func (s *Section) Values() map[string]string {
	return s.s.KeysHash()
}

// Resolved returns the section's settings with the defaults section layered
// underneath: the section's own values win on collision, defaults supply
// anything the section omits.
func (s *Section) Resolved() map[string]string {
	out := s.file.Defaults()
	for k, v := range s.s.KeysHash() {
		out[k] = v
	}
	return out
}

// Value returns the raw value of a key, falling back to defaults and then
// to the empty string.
func (s *Section) Value(key string) string {
	if s.s.HasKey(key) {
		return s.s.Key(key).String()
	}
	return s.file.Defaults()[key]
}

// Int returns an integer value, falling back to def when the key is absent
// or unparseable.
func (s *Section) Int(key string, def int) int {
	v := s.Value(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Bool returns a boolean value, falling back to def when the key is absent
// or unparseable. Accepts the usual spellings (true/yes/on/1 and friends).
func (s *Section) Bool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(s.Value(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
