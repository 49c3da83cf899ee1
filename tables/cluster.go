package tables

import (
	"math"
	"sort"

	"github.com/tsawler/scantable/model"
)

// clusterRows groups boxes into row bands by their y-start. Boxes are
// sorted by y; a box joins the current band while its y differs from the
// band's first y by less than max(box height, minTolerance). The reference
// y is not updated on merge, so a band cannot creep down the page.
func clusterRows(boxes []model.Region, minTolerance float64) []model.RowBand {
	if len(boxes) == 0 {
		return nil
	}

	sorted := make([]model.Region, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var bands []model.RowBand
	current := []model.Region{sorted[0]}
	lastY := sorted[0].Y

	for _, box := range sorted[1:] {
		tolerance := math.Max(float64(box.Height), minTolerance)
		if math.Abs(float64(box.Y-lastY)) < tolerance {
			current = append(current, box)
			continue
		}
		bands = append(bands, model.RowBand{Boxes: current})
		current = []model.Region{box}
		lastY = box.Y
	}
	bands = append(bands, model.RowBand{Boxes: current})
	return bands
}
