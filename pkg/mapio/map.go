// Package mapio reads the YAML workspace description a gridenv planning
// run is configured from: world bounds, obstacles, start/goal poses, and
// motion model parameters (spec.md §4.8, C9). It replaces the teacher's
// OSM PBF ingestion (pkg/osmparser) now that the domain is a discretized
// occupancy grid rather than a road network — see DESIGN.md for why
// paulmach/osm has no referent here.
package mapio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
)

// ObstacleSpec is one circular obstacle entry in the YAML document.
type ObstacleSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// PoseSpec is a named (x, y, yaw-bucket) pose, used for start and goal.
type PoseSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Yaw int     `yaml:"yaw"`
}

// MapSpec is the top-level YAML document shape.
type MapSpec struct {
	Bounds struct {
		MinX float64 `yaml:"min_x"`
		MinY float64 `yaml:"min_y"`
		MaxX float64 `yaml:"max_x"`
		MaxY float64 `yaml:"max_y"`
	} `yaml:"bounds"`
	CellSize    float64        `yaml:"cell_size"`
	Dt          float64        `yaml:"dt"`
	Clearance   float64        `yaml:"clearance"`
	GoalRadius  float64        `yaml:"goal_radius"`
	Start       PoseSpec       `yaml:"start"`
	Goal        PoseSpec       `yaml:"goal"`
	GoalAnyYaw  bool           `yaml:"goal_any_yaw"`
	Obstacles   []ObstacleSpec `yaml:"obstacles"`
}

// Load parses a YAML map file at path into a MapSpec.
func Load(path string) (*MapSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: read %s: %w", path, err)
	}
	var spec MapSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("mapio: parse %s: %w", path, err)
	}
	if spec.CellSize <= 0 {
		return nil, fmt.Errorf("mapio: %s: cell_size must be > 0", path)
	}
	if spec.Dt <= 0 {
		return nil, fmt.Errorf("mapio: %s: dt must be > 0", path)
	}
	return &spec, nil
}

// Build turns a parsed MapSpec into a ready-to-search GridEnvironment.
func (m *MapSpec) Build() *gridenv.GridEnvironment {
	occ := gridenv.NewOccupancy(m.Bounds.MinX, m.Bounds.MinY, m.Bounds.MaxX, m.Bounds.MaxY)
	for _, o := range m.Obstacles {
		occ.AddObstacle(o.X, o.Y, o.Radius)
	}
	model := gridenv.NewMotionModel(m.Dt)
	env := gridenv.NewGridEnvironment(occ, model, m.CellSize, m.Clearance)

	goalYaw := m.Goal.Yaw
	if m.GoalAnyYaw {
		goalYaw = -1
	}
	env.SetGoal(m.Goal.X, m.Goal.Y, m.GoalRadius, goalYaw)
	return env
}

// StartKey quantizes the start pose into a gridenv.Key at time bucket 0.
func (m *MapSpec) StartKey() gridenv.Key {
	return gridenv.Key{
		X:   int(round(m.Start.X / m.CellSize)),
		Y:   int(round(m.Start.Y / m.CellSize)),
		Yaw: ((m.Start.Yaw % gridenv.NumYawBuckets) + gridenv.NumYawBuckets) % gridenv.NumYawBuckets,
	}
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}

// Save writes spec back out as YAML, in the format Load reads.
func Save(path string, spec *MapSpec) error {
	raw, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("mapio: marshal: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("mapio: write %s: %w", path, err)
	}
	return nil
}
