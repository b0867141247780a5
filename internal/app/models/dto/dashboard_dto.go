package dto

// DashboardStatsResponse represents the summary figures shown on an
// institution dashboard
type DashboardStatsResponse struct {
	TotalLearners    int     `json:"totalLearners"`
	ActiveLearners   int     `json:"activeLearners"`
	MaleLearners     int     `json:"maleLearners"`
	FemaleLearners   int     `json:"femaleLearners"`
	TotalAssets      int     `json:"totalAssets"`
	TotalBooks       int     `json:"totalBooks"`
	PendingReceipts  int     `json:"pendingReceipts"`
	VerifiedReceipts int     `json:"verifiedReceipts"`
	TotalCapitation  float64 `json:"totalCapitation"`
}

// AdmissionReportRow represents one class line of the admission report
type AdmissionReportRow struct {
	ClassName string `json:"className"`
	Male      int    `json:"male"`
	Female    int    `json:"female"`
	Total     int    `json:"total"`
}

// AdmissionReportResponse represents the per-class admission breakdown for
// an institution and year
type AdmissionReportResponse struct {
	InstitutionID int64                `json:"institutionId"`
	Year          int                  `json:"year"`
	Rows          []AdmissionReportRow `json:"rows"`
	TotalMale     int                  `json:"totalMale"`
	TotalFemale   int                  `json:"totalFemale"`
	GrandTotal    int                  `json:"grandTotal"`
}
