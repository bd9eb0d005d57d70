package config

var Presets = map[string]*Config{
	// The classic scene: three travellers threading the knot at once.
	"demo": {
		Dt: 0.01, Duration: 30.0,
		Entities: []EntityConfig{
			{Name: "circle", Path: "circle", World: 0, Color: [4]float64{1.0, 0.2, 0.2, 1}},
			{Name: "loop", Path: "loop", World: 3, Color: [4]float64{0.2, 1.0, 0.2, 1}},
			{Name: "weave", Path: "weave", World: 3, Color: [4]float64{0.3, 0.5, 1.0, 1}},
		},
	},
	"circle": {
		Dt: 0.01, Duration: 30.0,
		Entities: []EntityConfig{
			{Name: "circle", Path: "circle", World: 0, Color: [4]float64{1.0, 0.2, 0.2, 1}},
		},
	},
	"loop": {
		Dt: 0.01, Duration: 30.0,
		Entities: []EntityConfig{
			{Name: "loop", Path: "loop", World: 3, Color: [4]float64{0.2, 1.0, 0.2, 1}},
		},
	},
	"weave": {
		Dt: 0.005, Duration: 30.0,
		Entities: []EntityConfig{
			{Name: "weave", Path: "weave", World: 3, Color: [4]float64{0.3, 0.5, 1.0, 1}},
		},
	},
	// Phase-shifted copies of the same orbit, one per starting world.
	"swarm": {
		Dt: 0.01, Duration: 60.0,
		Entities: []EntityConfig{
			{Name: "c0", Path: "circle", Phase: 0.0, World: 0, Color: [4]float64{1.0, 0.2, 0.2, 1}},
			{Name: "c1", Path: "circle", Phase: 1.0, World: 1, Color: [4]float64{1.0, 0.6, 0.2, 1}},
			{Name: "c2", Path: "circle", Phase: 2.0, World: 2, Color: [4]float64{0.9, 0.9, 0.2, 1}},
			{Name: "c3", Path: "circle", Phase: 3.0, World: 3, Color: [4]float64{0.2, 1.0, 0.2, 1}},
			{Name: "c4", Path: "circle", Phase: 4.0, World: 4, Color: [4]float64{0.2, 0.6, 1.0, 1}},
			{Name: "c5", Path: "circle", Phase: 5.0, World: 5, Color: [4]float64{0.7, 0.3, 1.0, 1}},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
