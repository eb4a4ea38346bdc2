package concept

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Report renders the verdict with its whole requirement tree as a YAML document.
func (v Verdict) Report() ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s verdict: %w", v.Concept, err)
	}
	return data, nil
}
