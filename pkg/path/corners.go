package path

import "math"

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline returns the straight path through pts.
func Polyline(pts ...Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := Path{Move(pts[0].X, pts[0].Y)}
	for _, pt := range pts[1:] {
		p = append(p, Line(pt.X, pt.Y))
	}
	return p
}

// RoundCorners draws the polyline through pts with every interior corner
// rounded by radius r. The line stops short of the corner by at most r
// (never more than the adjacent segment is long) and a cubic with both
// control points on the corner joins the next segment. Corners whose
// neighbours share an x or y coordinate are not real corners and stay
// plain line segments, as do all corners when r <= 0.
func RoundCorners(pts []Point, r float64) Path {
	if r <= 0 || len(pts) < 3 {
		return Polyline(pts...)
	}
	p := Path{Move(pts[0].X, pts[0].Y)}
	for i := 1; i < len(pts)-1; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		if prev.X == next.X || prev.Y == next.Y {
			p = append(p, Line(cur.X, cur.Y))
			continue
		}
		dx, dy := sign(prev.X, next.X), sign(prev.Y, next.Y)
		p = append(p,
			Line(
				cur.X-dx*math.Min(math.Abs(cur.X-prev.X), r),
				cur.Y-dy*math.Min(math.Abs(cur.Y-prev.Y), r),
			),
			Cubic(
				cur.X, cur.Y,
				cur.X, cur.Y,
				cur.X+dx*math.Min(math.Abs(cur.X-next.X), r),
				cur.Y+dy*math.Min(math.Abs(cur.Y-next.Y), r),
			),
		)
	}
	last := pts[len(pts)-1]
	return append(p, Line(last.X, last.Y))
}

func sign(from, to float64) float64 {
	if from < to {
		return 1
	}
	return -1
}
