package storage

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata/v2"

	"github.com/vovakirdan/foxscape/internal/core"
)

// gdataObject groups every value the game stores.
const gdataObject = "scores"

// GdataStore keeps scalar values in the per-user data directory managed by
// gdata (a file on desktop, localStorage in the browser). It holds no score
// history.
type GdataStore struct {
	m *gdata.Manager
}

var _ core.ScalarStore = (*GdataStore)(nil)

// OpenGdata opens the data directory of app.
func OpenGdata(app string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata %q: %w", app, err)
	}
	return &GdataStore{m: m}, nil
}

// Load returns the value stored under key.
func (s *GdataStore) Load(key string) (string, bool, error) {
	prop := gdataProp(key)
	if !s.m.ObjectPropExists(gdataObject, prop) {
		return "", false, nil
	}
	data, err := s.m.LoadObjectProp(gdataObject, prop)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return string(data), true, nil
}

// Save stores value under key.
func (s *GdataStore) Save(key, value string) error {
	if err := s.m.SaveObjectProp(gdataObject, gdataProp(key), []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

// gdataProp maps a key to a name safe to use as a file name.
func gdataProp(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
}
