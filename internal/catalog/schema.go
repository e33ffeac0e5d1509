package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
	"gopkg.in/yaml.v3"
)

// everyDay expands to all weekdays in a seed hours table.
const everyDay = "매일"

var weekdays = []string{"월", "화", "수", "목", "금", "토", "일"}

// SeedFile is the top-level YAML structure of a catalog seed.
type SeedFile struct {
	Spots []SpotSeed `yaml:"spots"`
}

// SpotSeed defines one venue in the seed file.
type SpotSeed struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Category      string            `yaml:"category"`
	Area          string            `yaml:"area"`
	Latitude      float64           `yaml:"latitude"`
	Longitude     float64           `yaml:"longitude"`
	Address       string            `yaml:"address"`
	Rating        float64           `yaml:"rating"`
	ReviewCount   int               `yaml:"review_count"`
	Hours         map[string]string `yaml:"hours"`
	DurationMin   int               `yaml:"duration_min"`
	PriceRange    string            `yaml:"price_range"`
	EstimatedCost int               `yaml:"estimated_cost"`
	Description   string            `yaml:"description"`
	Highlights    []string          `yaml:"highlights"`
	Tips          []string          `yaml:"tips"`
	Accessibility string            `yaml:"accessibility"`
	Parking       bool              `yaml:"parking"`
	Contact       string            `yaml:"contact"`
	Website       string            `yaml:"website"`
}

// DecodeSeed parses a YAML seed. Unknown fields are rejected.
func DecodeSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f SeedFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("parsing catalog seed: %w", err)
	}
	return &f, nil
}

// Validate converts every seed entry and returns all problems found.
func (f *SeedFile) Validate() ([]domain.Spot, []error) {
	var (
		spots []domain.Spot
		errs  []error
	)
	seen := make(map[string]bool, len(f.Spots))
	for i, s := range f.Spots {
		if s.ID != "" && seen[s.ID] {
			errs = append(errs, fmt.Errorf("spots[%d]: duplicate id %q", i, s.ID))
			continue
		}
		seen[s.ID] = true

		spot, err := s.toDomain()
		if err != nil {
			errs = append(errs, fmt.Errorf("spots[%d]: %w", i, err))
			continue
		}
		spots = append(spots, spot)
	}
	return spots, errs
}

func (s SpotSeed) toDomain() (domain.Spot, error) {
	cat, ok := domain.ParseCategory(s.Category)
	if !ok {
		return domain.Spot{}, fmt.Errorf("%w: %s: unknown category %q", domain.ErrInvalidSpot, s.ID, s.Category)
	}
	price := domain.PriceRange(strings.ToLower(s.PriceRange))
	if s.PriceRange != "" && !price.Valid() {
		return domain.Spot{}, fmt.Errorf("%w: %s: unknown price range %q", domain.ErrInvalidSpot, s.ID, s.PriceRange)
	}
	return domain.NewSpot(domain.Spot{
		ID:       strings.TrimSpace(s.ID),
		Name:     strings.TrimSpace(s.Name),
		Category: cat,
		Location: domain.Location{
			Name:      domain.CoalesceStr(s.Area, s.Name),
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Address:   s.Address,
		},
		Rating:        s.Rating,
		ReviewCount:   s.ReviewCount,
		OpeningHours:  expandHours(s.Hours),
		DurationMin:   s.DurationMin,
		PriceRange:    price,
		EstimatedCost: s.EstimatedCost,
		Description:   s.Description,
		Highlights:    s.Highlights,
		Tips:          s.Tips,
		Accessibility: s.Accessibility,
		Parking:       s.Parking,
		Contact:       s.Contact,
		Website:       s.Website,
	})
}

func expandHours(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(weekdays))
	if all, ok := in[everyDay]; ok {
		for _, d := range weekdays {
			out[d] = all
		}
	}
	for day, hours := range in {
		if day != everyDay {
			out[day] = hours
		}
	}
	return out
}
