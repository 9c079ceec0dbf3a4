package component

// StatsMax caps every counter.
const StatsMax = 99

type Stats struct {
	Health    int
	HealthMax int
	Talisment int
	Life      int
}

// StatsDelta is what a pickup adds.
type StatsDelta struct {
	Health    int `yaml:"health"`
	HealthMax int `yaml:"health_max"`
	Talisment int `yaml:"talisment"`
	Life      int `yaml:"life"`
}

// Apply adds d, keeping every counter within [0, StatsMax] and health within
// its maximum.
func (s *Stats) Apply(d StatsDelta) {
	s.HealthMax = bound(s.HealthMax+d.HealthMax, StatsMax)
	s.Health = bound(s.Health+d.Health, s.HealthMax)
	s.Talisment = bound(s.Talisment+d.Talisment, StatsMax)
	s.Life = bound(s.Life+d.Life, StatsMax)
}

func bound(v, hi int) int {
	return max(0, min(v, hi))
}

var StatsComponent = NewComponent[Stats]()
