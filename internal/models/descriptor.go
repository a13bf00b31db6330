package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/coverwall/internal/shared"
)

// LoadDescriptors reads a JSON array of [InputDescriptor] from path and validates it.
func LoadDescriptors(path string) ([]InputDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return ParseDescriptors(data)
}

// ParseDescriptors decodes and validates descriptors.
//
// Field names match case-insensitively and null values count as absent. Ignore lists
// are always non-nil afterwards.
func ParseDescriptors(data []byte) ([]InputDescriptor, error) {
	var descriptors []InputDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("%w: failed to parse descriptors: %v", shared.ErrInvalidInput, err)
	}

	seen := make(map[string]int, len(descriptors))
	for i := range descriptors {
		d := &descriptors[i]
		if d.IgnoreIDs == nil {
			d.IgnoreIDs = []string{}
		}
		if d.IgnoreNameSubstrings == nil {
			d.IgnoreNameSubstrings = []string{}
		}

		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}

		if prev, ok := seen[d.HTTPFriendlyShortName]; ok {
			return nil, fmt.Errorf("%w: descriptor %d: httpFriendlyShortName %q already used by descriptor %d",
				shared.ErrInvalidInput, i, d.HTTPFriendlyShortName, prev)
		}
		seen[d.HTTPFriendlyShortName] = i
	}

	return descriptors, nil
}

// Validate reports the first missing required field or an httpFriendlyShortName that
// cannot be used as a directory name.
//
// The type value is not checked here; unknown types fail when the descriptor is dispatched.
func (d InputDescriptor) Validate() error {
	switch {
	case d.ShortName == "":
		return fmt.Errorf("%w: missing shortName", shared.ErrInvalidInput)
	case d.HTTPFriendlyShortName == "":
		return fmt.Errorf("%w: missing httpFriendlyShortName", shared.ErrInvalidInput)
	case d.Type == "":
		return fmt.Errorf("%w: missing type", shared.ErrInvalidInput)
	case d.SourceID == "":
		return fmt.Errorf("%w: missing id", shared.ErrInvalidInput)
	}
	return ValidateDirName(d.HTTPFriendlyShortName)
}

// ValidateDirName checks that id names exactly one directory below the output directory.
func ValidateDirName(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return fmt.Errorf("%w: httpFriendlyShortName %q is not a single directory name", shared.ErrInvalidInput, id)
	}
	return nil
}
