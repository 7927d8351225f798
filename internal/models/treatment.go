package models

// Catalog is the fixed set of treatments offered, with the durations a
// booking may choose from. Loaded once from configuration at startup.
type Catalog struct {
	Treatments []string `json:"treatments"`
	Durations  []int    `json:"durations"` // minutes
}

// HasTreatment reports whether name is part of the catalog.
func (c Catalog) HasTreatment(name string) bool {
	for _, t := range c.Treatments {
		if t == name {
			return true
		}
	}
	return false
}

// HasDuration reports whether minutes is an allowed appointment length.
func (c Catalog) HasDuration(minutes int) bool {
	for _, d := range c.Durations {
		if d == minutes {
			return true
		}
	}
	return false
}
