package config

import (
	"fmt"
	"os"
	"path"
)

// Validate checks values that do not depend on the filesystem.
func (c *Config) Validate() error {
	if c.StoriesDir == "" {
		return fmt.Errorf("stories_dir is required")
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	for _, p := range c.Patterns {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}
	return nil
}

// ValidateDirectories checks that the stories directory exists.
func (c *Config) ValidateDirectories() error {
	info, err := os.Stat(c.StoriesDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("stories directory does not exist: %s\nHint: Create the directory or use --stories-dir to specify a different path", c.StoriesDir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("stories path is not a directory: %s", c.StoriesDir)
	}
	return nil
}
