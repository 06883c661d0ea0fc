package stories

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// record is the long form of a static variant.
type record struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Dark        bool   `mapstructure:"dark"`
	HTML        string `mapstructure:"html"`
}

func decodeYAML(content []byte) (core.RawStoryMap, error) {
	var doc map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return fromDocument(doc)
}

func decodeTOML(content []byte) (core.RawStoryMap, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return fromDocument(doc)
}

// fromDocument converts a decoded static document. The variants live under a
// top-level "stories" table when present, otherwise at the top level.
func fromDocument(doc map[string]any) (core.RawStoryMap, error) {
	if doc == nil {
		return core.RawStoryMap{}, nil
	}
	if nested, ok := doc["stories"].(map[string]any); ok && len(doc) == 1 {
		doc = nested
	}

	raw := make(core.RawStoryMap, len(doc))
	for id, value := range doc {
		switch v := value.(type) {
		case string:
			raw[id] = v
		case map[string]any:
			var rec record
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:      &rec,
				ErrorUnused: true,
			})
			if err != nil {
				return nil, err
			}
			if err := dec.Decode(v); err != nil {
				return nil, fmt.Errorf("variant %q: %w", id, err)
			}
			story := core.Story{Title: rec.Title, Description: rec.Description, Dark: rec.Dark}
			if rec.HTML != "" {
				story.Render = core.HTML(rec.HTML)
			}
			raw[id] = story
		default:
			return nil, fmt.Errorf("variant %q: want HTML string or table, got %T", id, value)
		}
	}
	return raw, nil
}
