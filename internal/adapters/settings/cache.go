package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const (
	cacheDirMode    = 0o700
	cacheFileMode   = 0o600
	tempFilePattern = ".settings-*.toml.tmp"
)

type cacheSchema struct {
	SavedAt  time.Time           `toml:"saved_at"`
	Settings domain.UserSettings `toml:"settings"`
}

// Cache keeps the last known user settings in a local TOML file so the
// client still has values to show when the settings endpoint fails.
type Cache struct {
	path  string
	clock ports.Clock
	mu    sync.Mutex
}

var _ ports.SettingsCache = (*Cache)(nil)

func NewCache(path string, clock ports.Clock) *Cache {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Cache{path: filepath.Clean(path), clock: clock}
}

func (c *Cache) Save(settings domain.UserSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), cacheDirMode); err != nil {
		return fmt.Errorf("create settings cache directory: %w", err)
	}

	data, err := toml.Marshal(cacheSchema{SavedAt: c.clock.Now(), Settings: settings})
	if err != nil {
		return fmt.Errorf("encode settings cache: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(c.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tempName, c.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	cleanup = false
	return nil
}

func (c *Cache) Load() (domain.UserSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.UserSettings{}, domain.ErrSettingsNotFound
		}
		return domain.UserSettings{}, fmt.Errorf("read settings cache: %w", err)
	}

	var schema cacheSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.UserSettings{}, fmt.Errorf("decode settings cache: %w", err)
	}
	return schema.Settings, nil
}
