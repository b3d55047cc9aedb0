package models

// Observation is one dated price/volume record for a symbol. Date is a
// calendar day in YYYY-MM-DD form and is unique per symbol. Volume is
// nil for forex pairs, which the provider reports without volume.
type Observation struct {
	Date   string   `json:"date"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume *float64 `json:"volume,omitempty"`
}

// Equal reports whether two observations carry identical fields,
// treating a nil volume as distinct from any numeric volume.
func (o Observation) Equal(other Observation) bool {
	if o.Date != other.Date || o.Open != other.Open || o.High != other.High ||
		o.Low != other.Low || o.Close != other.Close {
		return false
	}
	if (o.Volume == nil) != (other.Volume == nil) {
		return false
	}
	if o.Volume != nil && *o.Volume != *other.Volume {
		return false
	}
	return true
}

// CacheDocument is the denormalized snapshot of all stores: asset-class
// plural name -> symbol -> observations ordered by date ascending.
type CacheDocument map[string]map[string][]Observation
