// Package seed holds the fixed advocate data set used to populate a fresh database.
package seed

import (
	_ "embed"
	"fmt"

	"advocates/internal/domain/models"

	"gopkg.in/yaml.v3"
)

//go:embed advocates.yaml
var advocatesYAML []byte

// Advocates decodes the embedded seed set. Ids are left zero for the database to assign.
func Advocates() ([]models.Advocate, error) {
	return Parse(advocatesYAML)
}

// Parse decodes a YAML list of advocates.
func Parse(data []byte) ([]models.Advocate, error) {
	var out []models.Advocate
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode seed advocates: %w", err)
	}
	for i := range out {
		if out[i].Specialties == nil {
			out[i].Specialties = models.Specialties{}
		}
	}
	return out, nil
}
