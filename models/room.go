package models

import "time"

// Room represents a bookable physical room.
type Room struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	Amenities   []string  `bson:"amenities" json:"amenities"`
	Available   bool      `bson:"available" json:"available"` // administratively disabled rooms are never offered
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// HasAmenities reports whether the room carries every amenity in required.
func (r Room) HasAmenities(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range r.Amenities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
