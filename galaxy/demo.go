package galaxy

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// DemoExtent is the half-width of the square Demo scatters systems over.
const DemoExtent = 1000

var (
	demoStarTypes   = []string{"Red Dwarf", "Yellow Dwarf", "Blue Giant", "White Dwarf"}
	demoPlanetTypes = []string{"Rocky", "Gas Giant", "Ice", "Desert"}
)

// Demo generates a galaxy of n systems scattered uniformly over
// [-DemoExtent, DemoExtent]². About 30% are owned by one of player-0..4, each
// has one star with up to seven planets, and each links to up to three other
// systems. The same seed always yields the same galaxy.
func Demo(n int, seed uint64) *Galaxy {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	systems := make([]*StarSystem, 0, n)
	for i := range n {
		s := &StarSystem{
			ID:               fmt.Sprintf("system-%d", i),
			Name:             fmt.Sprintf("System %d", i+1),
			LocationX:        (rng.Float64() - 0.5) * 2 * DemoExtent,
			LocationY:        (rng.Float64() - 0.5) * 2 * DemoExtent,
			ConnectedSystems: []string{},
		}
		if rng.Float64() > 0.7 {
			s.OwnerID = fmt.Sprintf("player-%d", rng.IntN(5))
		}

		star := Star{
			ID:   fmt.Sprintf("star-%d-0", i),
			Name: fmt.Sprintf("Star %dA", i+1),
			Type: demoStarTypes[rng.IntN(len(demoStarTypes))],
			Size: rng.Float64()*3 + 1,
		}
		for j := range rng.IntN(8) {
			star.Planets = append(star.Planets, Planet{
				ID:          fmt.Sprintf("planet-%d-%d", i, j),
				Name:        fmt.Sprintf("Planet %d.%d", i+1, j+1),
				Type:        demoPlanetTypes[rng.IntN(len(demoPlanetTypes))],
				Size:        rng.Float64()*2 + 0.5,
				OrbitRadius: float64(j+1) * 50,
				Angle:       rng.Float64() * 2 * math.Pi,
			})
		}
		s.Stars = []Star{star}
		systems = append(systems, s)
	}

	for _, s := range systems {
		for range rng.IntN(4) {
			other := systems[rng.IntN(len(systems))]
			if other.ID != s.ID && !slices.Contains(s.ConnectedSystems, other.ID) {
				s.ConnectedSystems = append(s.ConnectedSystems, other.ID)
			}
		}
	}

	return &Galaxy{
		ID:          "demo-galaxy",
		Name:        "Demo Galaxy",
		StarSystems: systems,
	}
}
