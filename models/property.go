package models

// PropertyQuery is the caller-supplied lookup target. Created per request,
// never reused; the region field arrives on the wire as "city" for
// historical reasons.
type PropertyQuery struct {
	Region        string `json:"city"`
	StreetName    string `json:"streetName"`
	AddressNumber string `json:"addressNumber"`
}

// PropertyRecord holds whatever assessment fields could be recovered from
// the results page. Every field is optional; the source markup has no
// guaranteed schema, so an unset field is normal, not an error.
type PropertyRecord struct {
	Owner          string `json:"owner,omitempty"`
	OwnerAddress   string `json:"ownerAddress,omitempty"`
	BuildingValue  string `json:"buildingValue,omitempty"`
	LandValue      string `json:"landValue,omitempty"`
	OtherValue     string `json:"otherValue,omitempty"`
	TotalValue     string `json:"totalValue,omitempty"`
	AssessmentYear string `json:"assessmentYear,omitempty"`
	LotSize        string `json:"lotSize,omitempty"`
	LastSalePrice  string `json:"lastSalePrice,omitempty"`
	LastSaleDate   string `json:"lastSaleDate,omitempty"`
	UseCode        string `json:"useCode,omitempty"`
	YearBuilt      string `json:"yearBuilt,omitempty"`
}

// FieldCount reports how many fields were recovered, for run auditing.
func (r *PropertyRecord) FieldCount() int {
	fields := []string{
		r.Owner, r.OwnerAddress, r.BuildingValue, r.LandValue,
		r.OtherValue, r.TotalValue, r.AssessmentYear, r.LotSize,
		r.LastSalePrice, r.LastSaleDate, r.UseCode, r.YearBuilt,
	}
	count := 0
	for _, f := range fields {
		if f != "" {
			count++
		}
	}
	return count
}
