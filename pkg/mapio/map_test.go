package mapio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
	"github.com/yugo1103/motion-primitive-library/pkg/mapio"
)

const sampleYAML = `
bounds:
  min_x: 0
  min_y: 0
  max_x: 10
  max_y: 10
cell_size: 1.0
dt: 1.0
clearance: 0.2
goal_radius: 0.5
start:
  x: 0
  y: 0
  yaw: 0
goal:
  x: 9
  y: 9
  yaw: 0
goal_any_yaw: false
obstacles:
  - x: 5
    y: 5
    radius: 0.5
`

func writeSample(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "map.yaml")
	err := writeFile(path, sampleYAML)
	assert.NoError(t, err)
	return path
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func TestLoad_ParsesAllFields(t *testing.T) {
	path := writeSample(t)

	spec, err := mapio.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, spec.CellSize)
	assert.Equal(t, 1.0, spec.Dt)
	assert.Equal(t, 0.2, spec.Clearance)
	assert.Len(t, spec.Obstacles, 1)
	assert.Equal(t, 5.0, spec.Obstacles[0].X)
}

func TestLoad_RejectsNonPositiveCellSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(t, writeFile(path, "cell_size: 0\ndt: 1.0\n"))

	_, err := mapio.Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveDt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(t, writeFile(path, "cell_size: 1.0\ndt: 0\n"))

	_, err := mapio.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := mapio.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMapSpec_Build_WiresObstaclesAndGoal(t *testing.T) {
	path := writeSample(t)
	spec, err := mapio.Load(path)
	assert.NoError(t, err)

	env := spec.Build()
	assert.True(t, env.Occ.Collides(5, 5, 0))
	assert.True(t, env.IsGoal(gridenv.Coord{X: 9, Y: 9, Yaw: gridenv.YawRadians(0)}))
}

func TestMapSpec_Build_GoalAnyYawIgnoresHeading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anyyaw.yaml")
	assert.NoError(t, writeFile(path, `
bounds: {min_x: 0, min_y: 0, max_x: 10, max_y: 10}
cell_size: 1.0
dt: 1.0
goal_radius: 0.5
goal: {x: 9, y: 9, yaw: 3}
goal_any_yaw: true
`))
	spec, err := mapio.Load(path)
	assert.NoError(t, err)

	env := spec.Build()
	assert.True(t, env.IsGoal(gridenv.Coord{X: 9, Y: 9, Yaw: gridenv.YawRadians(0)}))
}

func TestMapSpec_StartKey_QuantizesByCellSize(t *testing.T) {
	path := writeSample(t)
	spec, err := mapio.Load(path)
	assert.NoError(t, err)

	k := spec.StartKey()
	assert.Equal(t, gridenv.Key{X: 0, Y: 0, Yaw: 0}, k)
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	path := writeSample(t)
	spec, err := mapio.Load(path)
	assert.NoError(t, err)

	out := filepath.Join(t.TempDir(), "roundtrip.yaml")
	assert.NoError(t, mapio.Save(out, spec))

	reloaded, err := mapio.Load(out)
	assert.NoError(t, err)
	assert.Equal(t, spec.CellSize, reloaded.CellSize)
	assert.Equal(t, spec.Obstacles, reloaded.Obstacles)
}
