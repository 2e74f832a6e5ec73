package places

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"waypoint/internal/model"
)

const (
	// displayThreshold is the named-element count above which results are sampled.
	displayThreshold = 15
	// displaySample is how many elements survive sampling.
	displaySample = 8

	fallbackCategory    = "establishment"
	fallbackDescription = "local establishment"
)

// Element is a named upstream feature with a resolved coordinate.
type Element struct {
	ID         int64
	Type       string
	Tags       map[string]string
	Coordinate model.Coordinate
}

// Name returns the element's name tag.
func (e Element) Name() string {
	return e.Tags["name"]
}

// rawCategory returns the first populated category tag, or "".
func (e Element) rawCategory() string {
	for _, key := range categoryKeys {
		if v := e.Tags[key]; v != "" {
			return v
		}
	}
	return ""
}

// normalize drops unnamed elements and elements without a coordinate,
// substitutes centroids for ways and relations, and keeps the first
// occurrence of each type/id pair.
func normalize(raw []rawElement) []Element {
	seen := make(map[string]bool, len(raw))
	out := make([]Element, 0, len(raw))
	for _, r := range raw {
		if r.Tags == nil || r.Tags["name"] == "" {
			continue
		}

		var coord model.Coordinate
		switch {
		case (r.Type == "way" || r.Type == "relation") && r.Center != nil:
			coord = model.Coordinate{Latitude: r.Center.Lat, Longitude: r.Center.Lon}
		case r.Lat != nil && r.Lon != nil:
			coord = model.Coordinate{Latitude: *r.Lat, Longitude: *r.Lon}
		case r.Center != nil:
			coord = model.Coordinate{Latitude: r.Center.Lat, Longitude: r.Center.Lon}
		default:
			continue
		}

		key := r.Type + "/" + strconv.FormatInt(r.ID, 10)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, Element{
			ID:         r.ID,
			Type:       r.Type,
			Tags:       r.Tags,
			Coordinate: coord,
		})
	}
	return out
}

// CapForDisplay returns elements unchanged when there are at most 15 of
// them, otherwise a sample of 8 chosen by sample. A nil sample uses an
// unseeded uniform sampler.
func CapForDisplay(elements []Element, sample func(n, k int) []int) []Element {
	if len(elements) <= displayThreshold {
		return elements
	}
	if sample == nil {
		sample = randomSample
	}
	idxs := sample(len(elements), displaySample)
	out := make([]Element, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, elements[i])
	}
	return out
}

// randomSample picks k distinct indexes from [0, n).
func randomSample(n, k int) []int {
	if k > n {
		k = n
	}
	return rand.Perm(n)[:k]
}

// ToRecords maps elements to place records. Ids combine the upstream id
// with the position in elements so they are unique within one result.
func ToRecords(elements []Element) []model.PlaceRecord {
	records := make([]model.PlaceRecord, 0, len(elements))
	for i, e := range elements {
		raw := e.rawCategory()

		category := fallbackCategory
		if raw != "" {
			category = strings.Replace(raw, "_", " ", 1)
		}

		description := e.Tags["description"]
		if description == "" {
			label := raw
			if label == "" {
				label = fallbackDescription
			}
			description = fmt.Sprintf("%s (%s)", e.Name(), label)
		}

		records = append(records, model.PlaceRecord{
			ID:          fmt.Sprintf("%d-%d", e.ID, i),
			Name:        e.Name(),
			Category:    category,
			Description: description,
			Rating:      nil,
			Coordinate:  e.Coordinate,
			PlaceID:     strconv.FormatInt(e.ID, 10),
		})
	}
	return records
}
