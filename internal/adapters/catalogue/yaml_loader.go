// Package catalogue loads preset catalogues from YAML files
package catalogue

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// File is the on-disk catalogue layout. Pointer fields distinguish "absent"
// from zero.
type File struct {
	Sonars      []SonarEntry  `yaml:"sonars"`
	Orders      []OrderEntry  `yaml:"orders"`
	BottomTypes []BottomEntry `yaml:"bottom_types"`
}

type SonarEntry struct {
	Name     string   `yaml:"name"`
	DeadTime *float64 `yaml:"dead_time_s"`
}

type OrderEntry struct {
	Name            string          `yaml:"name"`
	Aliases         []string        `yaml:"aliases"`
	DefaultCoverage float64         `yaml:"default_coverage_pct"`
	TVU             *TVUEntry       `yaml:"tvu"`
	Detection       *DetectionEntry `yaml:"detection"`
}

type TVUEntry struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

type DetectionEntry struct {
	Minimum       float64 `yaml:"minimum_m"`
	DepthLimit    float64 `yaml:"depth_limit_m"`
	DepthFraction float64 `yaml:"depth_fraction"`
}

type BottomEntry struct {
	Name   string  `yaml:"name"`
	Factor float64 `yaml:"factor"`
}

// LoadFile reads a catalogue from a YAML file
func LoadFile(path string) (*domain.Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue file: %w", err)
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", path, err)
	}
	return cat, nil
}

// Load decodes and validates a catalogue document
func Load(r io.Reader) (*domain.Catalogue, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	return file.ToDomain()
}

// ToDomain converts the file layout into a validated catalogue
func (f File) ToDomain() (*domain.Catalogue, error) {
	sonars := make([]domain.SonarProfile, 0, len(f.Sonars))
	for _, s := range f.Sonars {
		sonars = append(sonars, domain.SonarProfile{
			Name:     s.Name,
			DeadTime: shared.FromPtr(s.DeadTime),
		})
	}

	orders := make([]domain.OrderProfile, 0, len(f.Orders))
	for _, o := range f.Orders {
		profile := domain.OrderProfile{
			Name:            o.Name,
			Aliases:         o.Aliases,
			DefaultCoverage: o.DefaultCoverage,
		}
		if o.TVU != nil {
			profile.TVU = shared.Some(survey.TVUCoefficients{A: o.TVU.A, B: o.TVU.B})
		}
		if o.Detection != nil {
			profile.Detection = shared.Some(survey.DetectionRule{
				Minimum:       o.Detection.Minimum,
				DepthLimit:    o.Detection.DepthLimit,
				DepthFraction: o.Detection.DepthFraction,
			})
		}
		orders = append(orders, profile)
	}

	bottoms := make([]domain.BottomType, 0, len(f.BottomTypes))
	for _, b := range f.BottomTypes {
		bottoms = append(bottoms, domain.BottomType{Name: b.Name, Factor: b.Factor})
	}

	return domain.New(sonars, orders, bottoms)
}
