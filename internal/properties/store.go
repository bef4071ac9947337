// Package properties resolves named settings, checking explicit overrides before the enRole.properties file
package properties

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/magiconair/properties"
)

// DefaultFile is relative to the product home directory
const DefaultFile = "data/enRole.properties"

type Store struct {
	overrides map[string]string
	file      *properties.Properties
}

// PathFor joins the product home with a properties file path, leaving absolute paths alone
func PathFor(itimHome string, file string) string {
	if file == "" {
		file = DefaultFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(itimHome, file)
}

// Load reads the properties file once. The file is read as ISO-8859-1 with ${} expansion off,
// the way java.util.Properties reads it.
func Load(path string, overrides map[string]string) (*Store, error) {
	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties file %s: %w", path, err)
	}
	return New(p, overrides), nil
}

func New(file *properties.Properties, overrides map[string]string) *Store {
	if file == nil {
		file = properties.NewProperties()
	}
	o := make(map[string]string, len(overrides))
	for k, v := range overrides {
		o[k] = v
	}
	return &Store{overrides: o, file: file}
}

func (s *Store) Lookup(name string) (string, bool) {
	if v, ok := s.overrides[name]; ok {
		return v, true
	}
	return s.file.Get(name)
}

func (s *Store) Get(name string) string {
	v, _ := s.Lookup(name)
	return v
}

// Keys returns every known name from both sources, sorted
func (s *Store) Keys() []string {
	seen := make(map[string]struct{}, len(s.overrides))
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, k := range s.file.Keys() {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
