package scenario

// Template bounds the size of a generated scenario for one difficulty level.
type Template struct {
	Agents      [2]int `yaml:"agents"`
	Objects     [2]int `yaml:"objects"`
	Transfers   [2]int `yaml:"transfers"`
	MaxQuantity int64  `yaml:"maxQuantity"`
}

// Weights combines graph metrics and scenario size into a complexity score.
type Weights struct {
	Diameter  float64 `yaml:"diameter"`
	Density   float64 `yaml:"density"`
	Branching float64 `yaml:"branching"`
	Cycles    float64 `yaml:"cycles"`
	Transfers float64 `yaml:"transfers"`
	Agents    float64 `yaml:"agents"`
	Objects   float64 `yaml:"objects"`
}

// Config drives the scenario generator. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// Distribution maps difficulty level to its share of generated
	// scenarios; shares are relative, not percentages.
	Distribution map[string]int      `yaml:"distribution"`
	Templates    map[string]Template `yaml:"templates"`

	// GraphTypes lists the transfer topologies to draw from.
	GraphTypes []string `yaml:"graphTypes"`

	// Object catalog selection.
	Categories         []string `yaml:"categories"`
	CategoryPreference string   `yaml:"categoryPreference"`
	CustomObjects      []string `yaml:"customObjects"`

	// Initial inventory shaping.
	MaxInitialBase        int64              `yaml:"maxInitialBase"`
	BufferRange           [2]int64           `yaml:"bufferRange"`
	DifficultyMultipliers map[string]float64 `yaml:"difficultyMultipliers"`
	ObjectPresence        float64            `yaml:"objectPresence"`
	SmallQuantity         float64            `yaml:"smallQuantity"`

	// Transfer generation limits.
	MaxTransfersCap     int `yaml:"maxTransfersCap"`
	MaxTransferAttempts int `yaml:"maxTransferAttempts"`

	Complexity Weights `yaml:"complexity"`
}

// DefaultConfig returns the generation parameters used when no configuration
// file overrides them.
func DefaultConfig() Config {
	return Config{
		Distribution: map[string]int{"simple": 2, "moderate": 2, "complex": 1},
		Templates: map[string]Template{
			"simple":   {Agents: [2]int{3, 5}, Objects: [2]int{2, 3}, Transfers: [2]int{3, 5}, MaxQuantity: 20},
			"moderate": {Agents: [2]int{5, 8}, Objects: [2]int{3, 5}, Transfers: [2]int{5, 10}, MaxQuantity: 35},
			"complex":  {Agents: [2]int{10, 15}, Objects: [2]int{6, 10}, Transfers: [2]int{15, 25}, MaxQuantity: 100},
			"extreme":  {Agents: [2]int{15, 25}, Objects: [2]int{10, 15}, Transfers: [2]int{25, 40}, MaxQuantity: 150},
		},
		GraphTypes:            []string{"tree", "ring", "star", "flow", "dag", "complete", "bipartite"},
		Categories:            []string{"educational", "toys", "food"},
		MaxInitialBase:        15,
		BufferRange:           [2]int64{2, 6},
		DifficultyMultipliers: map[string]float64{"simple": 1.0, "moderate": 1.5, "complex": 2.0, "extreme": 2.5},
		ObjectPresence:        0.8,
		SmallQuantity:         0.35,
		MaxTransfersCap:       25,
		MaxTransferAttempts:   10,
		Complexity: Weights{
			Diameter:  0.15,
			Density:   0.1,
			Branching: 0.3,
			Cycles:    0.3,
			Transfers: 0.4,
			Agents:    0.3,
			Objects:   0.2,
		},
	}
}

// agentPool provides human names for generated agents; overflow falls back to
// numbered placeholders.
var agentPool = []string{
	"Alex", "Sam", "Taylor", "Jordan", "Casey", "Riley", "Avery", "Quinn",
	"Blake", "Morgan", "Rowan", "Parker", "River", "Jamie", "Drew", "Skylar",
	"Dakota", "Reese", "Phoenix", "Hayden", "Kai", "Remy", "Emery", "Logan",
	"Micah",
}

// objectCatalog groups countable object nouns by category.
var objectCatalog = map[string][]string{
	"educational": {"books", "pencils", "notebooks", "erasers", "rulers", "markers"},
	"toys":        {"marbles", "stickers", "cards", "blocks", "puzzles", "dolls"},
	"food":        {"apples", "cookies", "candies", "oranges", "cakes", "sandwiches"},
	"sports":      {"balls", "bats", "gloves", "jerseys", "helmets", "shoes"},
	"tools":       {"hammers", "screws", "nails", "wrenches", "bolts", "clips"},
	"office":      {"papers", "folders", "staples", "pens", "envelopes", "stamps"},
	"crafts":      {"beads", "ribbons", "buttons", "threads", "paints", "brushes"},
}

// Categories lists the known object categories.
func Categories() []string {
	out := make([]string, 0, len(objectCatalog))
	for c := range objectCatalog {
		out = append(out, c)
	}
	return out
}
