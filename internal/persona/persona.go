// Package persona provides person archetypes and the time-budgeted
// decent-mobility criterion over travel plans.
//
// A Persona is a set of personal characteristics shared by one or more
// people, together with the standard weekly trip needs of that group. A
// Person adopts the trip needs of the first persona that classifies them as
// a member. Personas carry no per-person state and are shared, never owned.
package persona

import "fmt"

// Gender is a measurable demographic characteristic used for persona
// classification.
type Gender uint8

const (
	// GenderFlint covers female, lesbian, intersex, non-binary, and trans
	// people, following the survey coding this model is derived from.
	GenderFlint Gender = iota
	GenderMale
)

// Purpose enumerates why a trip is made.
type Purpose uint8

const (
	PurposeWork Purpose = iota
	PurposeLeisure
)

// NumPurposes is the total number of trip purposes.
const NumPurposes = 2

// PurposeName returns a human-readable name for a purpose.
func PurposeName(p Purpose) string {
	switch p {
	case PurposeWork:
		return "work"
	case PurposeLeisure:
		return "leisure"
	default:
		return fmt.Sprintf("purpose(%d)", p)
	}
}

// Person is a single individual with zero or more measurable
// characteristics. Gender is currently the only example.
type Person struct {
	Gender Gender `json:"gender"`

	// TripNeeds counts the trips needed per week, by purpose.
	TripNeeds map[Purpose]int `json:"trip_needs"`
}

// Persona is a shared archetype. Its fields duplicate a subset of Person's
// characteristics; IsMember classifies people against them.
type Persona struct {
	Gender Gender `json:"gender"`

	// Needs are the standard weekly trip needs for all members.
	Needs map[Purpose]int `json:"needs"`

	// TypicalTravelTime is the typical single-trip travel time of members
	// [minutes], used as the anchor for optimized trip selection.
	TypicalTravelTime float64 `json:"typical_travel_time"`
}

// IsMember reports whether person belongs to the group this persona
// describes.
func (pa Persona) IsMember(p Person) bool {
	return p.Gender == pa.Gender
}

// TripNeeds returns a copy of the persona's standard trip needs, so that
// callers cannot mutate the shared archetype through the returned map.
func (pa Persona) TripNeeds() map[Purpose]int {
	needs := make(map[Purpose]int, len(pa.Needs))
	for p, n := range pa.Needs {
		needs[p] = n
	}
	return needs
}

// DefaultPersonas returns the built-in archetype table. The counts are
// placeholders pending calibration against travel-survey data; tests and
// scenarios may substitute their own table.
func DefaultPersonas() []Persona {
	return []Persona{
		{
			Gender:            GenderMale,
			Needs:             map[Purpose]int{PurposeWork: 4, PurposeLeisure: 1},
			TypicalTravelTime: 30,
		},
		{
			Gender:            GenderFlint,
			Needs:             map[Purpose]int{PurposeWork: 4, PurposeLeisure: 1},
			TypicalTravelTime: 30,
		},
	}
}

// Classify returns the first persona in table that p is a member of, and
// whether one was found.
func Classify(p Person, table []Persona) (Persona, bool) {
	for _, pa := range table {
		if pa.IsMember(p) {
			return pa, true
		}
	}
	return Persona{}, false
}

// AdoptPersona sets p.TripNeeds from the first applicable persona in table.
// Reports whether any persona matched; on no match the person's needs are
// left untouched.
func (p *Person) AdoptPersona(table []Persona) bool {
	pa, ok := Classify(*p, table)
	if !ok {
		return false
	}
	p.TripNeeds = pa.TripNeeds()
	return true
}
