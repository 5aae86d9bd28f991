package dto

// DashboardTotals summarizes the applicant population.
type DashboardTotals struct {
	TotalApplicants  int      `db:"total_applicants" json:"total_applicants"`
	Enrolled         int      `db:"enrolled" json:"enrolled"`
	NotEnrolled      int      `db:"not_enrolled" json:"not_enrolled"`
	AvgChance        *float64 `db:"avg_chance" json:"avg_chance,omitempty"`
	ScoredApplicants int      `db:"scored_applicants" json:"scored_applicants"`
}

// CountBucket is one bar of a dashboard breakdown chart.
type CountBucket struct {
	Label    string `db:"label" json:"label"`
	Count    int    `db:"count" json:"count"`
	Enrolled int    `db:"enrolled" json:"enrolled"`
}

// DashboardSummary aggregates everything the admin dashboard renders in
// one payload so the page needs a single request.
type DashboardSummary struct {
	Totals      DashboardTotals `json:"totals"`
	ByProgram   []CountBucket   `json:"by_program"`
	ByEntry     []CountBucket   `json:"by_entry_level"`
	ByProvince  []CountBucket   `json:"by_province"`
	ModelStatus string          `json:"model_status"`
}
