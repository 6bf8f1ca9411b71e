// Package market serves mandi price quotes with a minimum-support-price
// fallback. The mandi dataset is a static sample; live Agmarknet ingestion is
// out of scope.
package market

// Quote is a per-mandi price spread in rupees per quintal.
type Quote struct {
	MinPrice   int `json:"min_price"`
	MaxPrice   int `json:"max_price"`
	ModalPrice int `json:"modal_price"`
}

// msp2024_25 is the MSP table for the 2024-25 season, Rs/quintal.
var msp2024_25 = map[string]int{
	"Wheat":          2275,
	"Rice":           2300,
	"Paddy":          2300,
	"Cotton":         7121,
	"Maize":          2225,
	"Soybean":        4892,
	"Mustard":        5950,
	"Groundnut":      6783,
	"Arhar (Toor)":   7550,
	"Moong":          8682,
	"Urad":           7400,
	"Sunflower":      7280,
	"Safflower":      5800,
	"Jowar (Hybrid)": 3371,
	"Bajra":          2625,
	"Sesame":         9267,
	"Sugarcane":      340,
}

// sampleMandiData is keyed state -> crop -> mandi.
var sampleMandiData = map[string]map[string]map[string]Quote{
	"Andhra Pradesh": {
		"Tomato": {
			"Kurnool Mandi":    {MinPrice: 800, MaxPrice: 1800, ModalPrice: 1200},
			"Guntur Mandi":     {MinPrice: 700, MaxPrice: 1600, ModalPrice: 1100},
			"Vijayawada Mandi": {MinPrice: 900, MaxPrice: 2000, ModalPrice: 1400},
		},
		"Rice": {
			"Nellore Mandi":  {MinPrice: 2100, MaxPrice: 2500, ModalPrice: 2300},
			"Kakinada Mandi": {MinPrice: 2200, MaxPrice: 2600, ModalPrice: 2400},
		},
		"Cotton": {
			"Guntur Mandi": {MinPrice: 6500, MaxPrice: 7500, ModalPrice: 7000},
			"Adoni Mandi":  {MinPrice: 6800, MaxPrice: 7800, ModalPrice: 7200},
		},
	},
	"Telangana": {
		"Tomato": {
			"Gaddiannaram Mandi": {MinPrice: 1000, MaxPrice: 2200, ModalPrice: 1600},
			"Hyderabad Mandi":    {MinPrice: 1200, MaxPrice: 2500, ModalPrice: 1800},
		},
		"Cotton": {
			"Warangal Mandi":  {MinPrice: 6800, MaxPrice: 7600, ModalPrice: 7100},
			"Nizamabad Mandi": {MinPrice: 6600, MaxPrice: 7400, ModalPrice: 6900},
		},
	},
	"Maharashtra": {
		"Onion": {
			"Lasalgaon Mandi": {MinPrice: 800, MaxPrice: 2000, ModalPrice: 1400},
			"Nashik Mandi":    {MinPrice: 900, MaxPrice: 2200, ModalPrice: 1500},
		},
		"Wheat": {
			"Pune Mandi": {MinPrice: 2100, MaxPrice: 2500, ModalPrice: 2300},
		},
	},
	"Punjab": {
		"Wheat": {
			"Ludhiana Mandi": {MinPrice: 2200, MaxPrice: 2600, ModalPrice: 2400},
			"Amritsar Mandi": {MinPrice: 2100, MaxPrice: 2500, ModalPrice: 2300},
		},
		"Rice": {
			"Patiala Mandi": {MinPrice: 2100, MaxPrice: 2500, ModalPrice: 2300},
		},
	},
}

// Prices returns mandi-wise quotes for a crop in a state. When the sample
// dataset has no rows but the crop carries an MSP, a single MSP-derived quote
// is returned; otherwise the result is empty.
func Prices(state, crop string) map[string]Quote {
	if crops, ok := sampleMandiData[state]; ok {
		if quotes, ok := crops[crop]; ok {
			out := make(map[string]Quote, len(quotes))
			for mandi, q := range quotes {
				out[mandi] = q
			}
			return out
		}
	}
	if msp, ok := msp2024_25[crop]; ok {
		return map[string]Quote{
			"MSP (Govt. Support Price)": {MinPrice: msp, MaxPrice: msp, ModalPrice: msp},
		}
	}
	return map[string]Quote{}
}

// MSP returns the full minimum-support-price table.
func MSP() map[string]int {
	out := make(map[string]int, len(msp2024_25))
	for crop, price := range msp2024_25 {
		out[crop] = price
	}
	return out
}

// States lists the states present in the sample mandi dataset.
func States() []string {
	out := make([]string, 0, len(sampleMandiData))
	for s := range sampleMandiData {
		out = append(out, s)
	}
	return out
}
