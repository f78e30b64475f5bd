// Package testdata holds recorded hand landmark readings for tests.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/ayusman/pinchflap/internal/landmark"
)

//go:embed hands/*.json
var handsFS embed.FS

// LoadHands loads a recorded reading by name, without the .json suffix.
// Files use the landmark service's response shape.
func LoadHands(name string) ([]landmark.Hand, error) {
	data, err := handsFS.ReadFile("hands/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load hands %s: %w", name, err)
	}

	var reading struct {
		Hands []landmark.Hand `json:"hands"`
	}
	if err := json.Unmarshal(data, &reading); err != nil {
		return nil, fmt.Errorf("decode hands %s: %w", name, err)
	}

	return reading.Hands, nil
}

// Names lists the recorded readings.
func Names() ([]string, error) {
	entries, err := handsFS.ReadDir("hands")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}

	return names, nil
}
