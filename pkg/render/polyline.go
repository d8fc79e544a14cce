package render

import (
	"github.com/twpayne/go-polyline"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
)

// EncodePolyline returns the Google polyline encoding of traj's path,
// an alternate export alongside SVG for tooling that already consumes
// polylines (spec.md C12). Coordinates are encoded as (y, x) pairs
// since go-polyline follows the (lat, lng) convention polyline readers
// expect; callers treat Y as the "lat" axis and X as "lng".
func EncodePolyline(traj []gridenv.ActionRecord) []byte {
	if len(traj) == 0 {
		return nil
	}
	coords := make([][]float64, 0, len(traj)+1)
	coords = append(coords, []float64{traj[0].From.Y, traj[0].From.X})
	for _, rec := range traj {
		coords = append(coords, []float64{rec.To.Y, rec.To.X})
	}
	return polyline.EncodeCoords(coords)
}
