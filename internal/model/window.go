package model

// Point is a location in global screen coordinates (points, origin top-left).
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Bounds is a screen rectangle.
type Bounds struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Contains reports whether p lies inside b. The right and bottom edges are exclusive.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.X && p.Y >= b.Y &&
		p.X < b.X+b.Width && p.Y < b.Y+b.Height
}

// Window represents an on-screen window as reported by the window server.
// Layer 0 is the normal application window layer; menu bars, the Dock and
// overlays live on other layers.
type Window struct {
	App    string `yaml:"app"             json:"app"`
	PID    int    `yaml:"pid"             json:"pid"`
	Title  string `yaml:"title,omitempty" json:"title,omitempty"`
	ID     int    `yaml:"id"              json:"id"`
	Layer  int    `yaml:"layer"           json:"layer"`
	Bounds Bounds `yaml:"bounds"          json:"bounds"`
}
