package animation

import "github.com/spaghettifunk/skyhook/engine/scene"

// Driver mutates local node parameters before each propagation pass.
// elapsed is the time in seconds since the frame loop started.
type Driver interface {
	Animate(g *scene.Graph, elapsed float64)
}

// DriverFunc lets an ordinary function act as a Driver.
type DriverFunc func(g *scene.Graph, elapsed float64)

func (f DriverFunc) Animate(g *scene.Graph, elapsed float64) {
	f(g, elapsed)
}

// Drivers runs several drivers in order.
type Drivers []Driver

func (d Drivers) Animate(g *scene.Graph, elapsed float64) {
	for _, driver := range d {
		driver.Animate(g, elapsed)
	}
}
