package suggestion

import (
	"fmt"
	"strings"

	"roomly/models"
)

// filterByConstraints applies the hard capacity and amenity constraints to
// already-available candidate rooms. An empty result yields a warning naming
// the unmet constraint; the filter is never bypassed.
func filterByConstraints(activity models.Activity, rooms []models.Room) ([]models.Room, string) {
	bySize := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Capacity >= activity.Participants {
			bySize = append(bySize, r)
		}
	}
	if len(bySize) == 0 {
		return nil, fmt.Sprintf(
			"No room can hold %d participant(s) for '%s'.",
			activity.Participants, activity.Name)
	}

	if len(activity.RequiredAmenities) == 0 {
		return bySize, ""
	}

	matched := make([]models.Room, 0, len(bySize))
	for _, r := range bySize {
		if r.HasAmenities(activity.RequiredAmenities) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Sprintf(
			"No room offers the required amenities (%s) for '%s'.",
			strings.Join(activity.RequiredAmenities, ", "), activity.Name)
	}
	return matched, ""
}
