// Package render draws a completed (LP)A* run to SVG for offline
// debugging: the occupancy grid, every opened/closed node colored by
// status, and the reconstructed trajectory (spec.md §4.10, C12).
package render

import (
	"fmt"
	"io"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
)

const (
	pxPerUnit  = 20.0
	margin     = 20.0
	openColor  = "#66a3ff"
	closeColor = "#cccccc"
	pathColor  = "#d62728"
	obsColor   = "#333333"
)

// RenderSearch writes an SVG document to w depicting occ's bounds and
// obstacles, every node currently tracked by ss colored by
// opened/closed status, and traj as a highlighted polyline.
func RenderSearch(w io.Writer, occ *gridenv.Occupancy, ss *searchcore.StateSpace[gridenv.Key, gridenv.Coord, gridenv.ActionRecord], traj []gridenv.ActionRecord) error {
	width := (occ.MaxX-occ.MinX)*pxPerUnit + 2*margin
	height := (occ.MaxY-occ.MinY)*pxPerUnit + 2*margin

	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%.1f" height="%.1f" viewBox="0 0 %.1f %.1f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(w, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")

	for _, n := range ss.Nodes() {
		color := closeColor
		if n.Opened && !n.Closed {
			color = openColor
		}
		if !n.Opened && !n.Closed {
			continue
		}
		x, y := project(occ, n.Coord.X, n.Coord.Y)
		fmt.Fprintf(w, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s" opacity="0.6"/>`+"\n", x, y, color)
	}

	renderObstacles(w, occ)
	renderTrajectory(w, occ, traj)

	fmt.Fprintln(w, `</svg>`)
	return nil
}

func renderObstacles(w io.Writer, occ *gridenv.Occupancy) {
	for _, o := range occ.Obstacles() {
		x, y := project(occ, o.X, o.Y)
		fmt.Fprintf(w, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", x, y, o.Radius*pxPerUnit, obsColor)
	}
}

func renderTrajectory(w io.Writer, occ *gridenv.Occupancy, traj []gridenv.ActionRecord) {
	if len(traj) == 0 {
		return
	}
	fmt.Fprint(w, `<polyline points="`)
	x0, y0 := project(occ, traj[0].From.X, traj[0].From.Y)
	fmt.Fprintf(w, "%.2f,%.2f ", x0, y0)
	for _, rec := range traj {
		x, y := project(occ, rec.To.X, rec.To.Y)
		fmt.Fprintf(w, "%.2f,%.2f ", x, y)
	}
	fmt.Fprintf(w, `" fill="none" stroke="%s" stroke-width="2.5"/>`+"\n", pathColor)
}

func project(occ *gridenv.Occupancy, x, y float64) (float64, float64) {
	return margin + (x-occ.MinX)*pxPerUnit, margin + (occ.MaxY-y)*pxPerUnit
}
