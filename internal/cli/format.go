package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

func itoa(n int) string { return strconv.Itoa(n) }

// joinIDs renders bar IDs as a comma-separated list.
func joinIDs(ids []lifeline.BarID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// parseRect parses "x,y,w,h" into a rectangle.
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %q: want x,y,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "rectangle %q", s)
		}
		v[i] = n
	}
	r := geom.R(v[0], v[1], v[2], v[3])
	if err := r.Validate(); err != nil {
		return geom.Rect{}, err
	}
	return r, nil
}
