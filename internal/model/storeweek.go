package model

// Feature names as they appear on the wire and in model artifacts.
// Keep these stable; trained artifacts reference columns by name.
const (
	FeatureSalesLag1   = "Sales_Lag1"
	FeatureSalesLag2   = "Sales_Lag2"
	FeatureSalesMA3    = "Sales_MA3"
	FeatureSalesMA7    = "Sales_MA7"
	FeatureFuelPrice   = "Fuel_Price"
	FeatureTemperature = "Temperature"
	FeatureCPI         = "CPI"
	FeatureWeek        = "Week"
	FeatureMonth       = "Month"
	FeatureDay         = "Day"
	FeatureIsHoliday   = "IsHoliday_x"
)

var featureNames = []string{
	FeatureSalesLag1,
	FeatureSalesLag2,
	FeatureSalesMA3,
	FeatureSalesMA7,
	FeatureFuelPrice,
	FeatureTemperature,
	FeatureCPI,
	FeatureWeek,
	FeatureMonth,
	FeatureDay,
	FeatureIsHoliday,
}

// StoreWeek is one store/week feature row.
// Units:
// - SalesLag1/SalesLag2: weekly sales one and two weeks back
// - SalesMA3/SalesMA7: 3- and 7-week moving averages of weekly sales
// - FuelPrice: regional fuel price
// - IsHoliday: 1 when the week contains a holiday, 0 otherwise
type StoreWeek struct {
	SalesLag1   float64
	SalesLag2   float64
	SalesMA3    float64
	SalesMA7    float64
	FuelPrice   float64
	Temperature float64
	CPI         float64
	Week        int
	Month       int
	Day         int
	IsHoliday   int
}

// FeatureNames returns the canonical column order used by Vector.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// FeatureIndex returns the position of name in the canonical column order.
func FeatureIndex(name string) (int, bool) {
	for i, n := range featureNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Vector flattens the row into canonical column order.
func (w StoreWeek) Vector() []float64 {
	return []float64{
		w.SalesLag1,
		w.SalesLag2,
		w.SalesMA3,
		w.SalesMA7,
		w.FuelPrice,
		w.Temperature,
		w.CPI,
		float64(w.Week),
		float64(w.Month),
		float64(w.Day),
		float64(w.IsHoliday),
	}
}
