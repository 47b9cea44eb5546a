package stockcsv

// Profile describes the column layout of one distributor's stock export.
// Adding a new distributor is just adding a Profile to the profiles slice.
type Profile struct {
	Name            string
	ItemCol         string
	BatchCol        string
	QtyCol          string
	MRPCol          string
	RateCol         string // purchase price; optional
	ExpiryCol       string // optional
	ManufacturerCol string // optional
	ScheduleCol     string // optional
}

// requiredCols returns the columns that must all be present in a header row
// for this profile to match. Optional columns never influence detection.
func (p Profile) requiredCols() []string {
	return []string{p.ItemCol, p.BatchCol, p.QtyCol, p.MRPCol}
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific layouts come first.
var profiles = []Profile{
	{
		Name:            "marg",
		ItemCol:         "Item Name",
		BatchCol:        "Batch No",
		QtyCol:          "Qty",
		MRPCol:          "M.R.P.",
		RateCol:         "Rate",
		ExpiryCol:       "Expiry",
		ManufacturerCol: "Company",
		ScheduleCol:     "Sch",
	},
	{
		Name:            "pharmarack",
		ItemCol:         "Product",
		BatchCol:        "Batch",
		QtyCol:          "Quantity",
		MRPCol:          "MRP",
		RateCol:         "PTR",
		ExpiryCol:       "Exp Date",
		ManufacturerCol: "Mfr",
	},
}
