package config

import (
	"log"

	"github.com/quasilyte/gdata"
)

const bindingsItem = "bindings"

// ItemStore is the subset of gdata.Manager the viewer persists through.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var store ItemStore

// InitPersistence opens the per-user data directory.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "doomerang-brawl",
	})
	if err != nil {
		log.Printf("[config] could not initialize persistence: %v", err)
		return err
	}
	store = m
	return nil
}

// UseStore replaces the persistence backend.
func UseStore(s ItemStore) {
	store = s
}

// LoadSavedInput overlays previously saved bindings on Input. Having nothing
// saved is not an error.
func LoadSavedInput() error {
	if store == nil {
		return nil
	}

	data, err := store.LoadItem(bindingsItem)
	if err != nil {
		log.Printf("[config] could not load bindings: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	in, err := ParseBindings(Input, data)
	if err != nil {
		log.Printf("[config] could not parse saved bindings: %v", err)
		return err
	}
	Input = in
	return nil
}

// SaveInput stores Input for the next start.
func SaveInput() error {
	if store == nil {
		return nil
	}

	data, err := FormatBindings(Input)
	if err != nil {
		return err
	}
	if err := store.SaveItem(bindingsItem, data); err != nil {
		log.Printf("[config] could not save bindings: %v", err)
		return err
	}
	return nil
}
