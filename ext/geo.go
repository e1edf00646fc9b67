package ext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zhtao/turboply"
)

// GeoRef is geo-referencing metadata carried in one structured comment
// line. It rides through the header protocol as an ordinary comment and
// never touches the element grammar.
type GeoRef struct {
	Label  string
	SRID   int
	BBox   [6]float64 // minx miny minz maxx maxy maxz
	Offset [3]float64
	Scale  [3]float64
}

const geoCommentTag = "georef"

func fmtF(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Comment renders the single-line comment body for g.
func (g GeoRef) Comment() string {
	parts := make([]string, 0, 15)
	parts = append(parts, geoCommentTag, g.Label, strconv.Itoa(g.SRID))
	for _, v := range g.BBox {
		parts = append(parts, fmtF(v))
	}
	for _, v := range g.Offset {
		parts = append(parts, fmtF(v))
	}
	for _, v := range g.Scale {
		parts = append(parts, fmtF(v))
	}
	return strings.Join(parts, " ")
}

// AddGeoRef registers g as a comment on a writer whose header has not
// been emitted yet.
func AddGeoRef(w *turboply.Writer, g GeoRef) {
	w.AddComment(g.Comment())
}

// ParseGeoRef scans parsed header comments for a geo-referencing line.
// The second result is false when no such comment exists; a malformed
// geo comment is an error.
func ParseGeoRef(comments []string) (GeoRef, bool, error) {
	for _, c := range comments {
		fields := strings.Fields(c)
		if len(fields) == 0 || fields[0] != geoCommentTag {
			continue
		}
		if len(fields) != 15 {
			return GeoRef{}, false, fmt.Errorf("%w: malformed geo comment %q", turboply.ErrFormat, c)
		}

		var g GeoRef
		g.Label = fields[1]
		srid, err := strconv.Atoi(fields[2])
		if err != nil {
			return GeoRef{}, false, fmt.Errorf("%w: bad SRID in geo comment %q", turboply.ErrFormat, c)
		}
		g.SRID = srid

		nums := make([]float64, 12)
		for i, f := range fields[3:] {
			nums[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return GeoRef{}, false, fmt.Errorf("%w: bad number %q in geo comment", turboply.ErrFormat, f)
			}
		}
		copy(g.BBox[:], nums[0:6])
		copy(g.Offset[:], nums[6:9])
		copy(g.Scale[:], nums[9:12])
		return g, true, nil
	}
	return GeoRef{}, false, nil
}
