package domain

// Stats summarises the incident collection
type Stats struct {
	Total         int `json:"total"`
	Open          int `json:"open"`
	Investigating int `json:"investigating"`
	Resolved      int `json:"resolved"`
	Closed        int `json:"closed"`
	Critical      int `json:"critical"`
}

// ComputeStats counts incidents by status and critical priority.
func ComputeStats(incidents []Incident) Stats {
	stats := Stats{Total: len(incidents)}
	for _, inc := range incidents {
		switch inc.Status {
		case IncidentStatusOpen:
			stats.Open++
		case IncidentStatusInvestigating:
			stats.Investigating++
		case IncidentStatusResolved:
			stats.Resolved++
		case IncidentStatusClosed:
			stats.Closed++
		}
		if inc.IsCritical() {
			stats.Critical++
		}
	}
	return stats
}
