package config

// PlanFile is the YAML shape of a research plan.
type PlanFile struct {
	Version        string   `yaml:"version"`
	RunID          string   `yaml:"run_id"`
	Regions        []string `yaml:"regions"`
	DwellingType   string   `yaml:"dwelling_type"`
	MaxMedianPrice float64  `yaml:"max_median_price"`
	NumEntities    int      `yaml:"num_entities"`
}
