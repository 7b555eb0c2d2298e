package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu    sync.RWMutex
	cached     = make(map[string]any)
	loadDotenv sync.Once
)

// Load parses environment variables into the provided configuration struct.
// Each distinct config type is parsed once per process; later calls return
// the cached copy so every component sees the same values.
//
// A .env file in the working directory is loaded on first use if present.
func Load[T any](v *T) error {
	loadDotenv.Do(func() {
		// Missing .env is fine; real deployments use the process environment.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()

	cacheMu.RLock()
	if c, ok := cached[key]; ok {
		*v = c.(T)
		cacheMu.RUnlock()
		return nil
	}
	cacheMu.RUnlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if c, ok := cached[key]; ok {
		// Another goroutine parsed the same type first; keep its copy.
		*v = c.(T)
		return nil
	}
	cached[key] = *v
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
