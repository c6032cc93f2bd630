package model

// DateLayout is the day-granularity date format used in the log.
const DateLayout = "2006-01-02"

// Reading is one normalized nutrient value from an API response.
// Calories readings carry no unit. Known is false only for a calorie
// reading whose value was absent from the response.
type Reading struct {
	Nutrient Nutrient `json:"nutrient"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Known    bool     `json:"known"`
}

// Facts is the ordered set of readings for one food entry, one per nutrient.
type Facts []Reading

// Get returns the reading for n.
func (f Facts) Get(n Nutrient) (Reading, bool) {
	for _, r := range f {
		if r.Nutrient == n {
			return r, true
		}
	}
	return Reading{}, false
}

// Entry is a single row of the nutrition log.
// Fields match the CSV schema: Date, Nutrient, Quantity, Unit.
type Entry struct {
	Date     string   `json:"date"`
	Nutrient Nutrient `json:"nutrient"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
}
