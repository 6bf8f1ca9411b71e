package advisory

import "strings"

// FarmingAdvisory derives advisory lines from a weather report without any
// model: fixed agronomic thresholds for temperature, humidity, wind and sky
// condition.
func FarmingAdvisory(r *Report) string {
	if r == nil {
		return "Weather data unavailable. Check local forecasts."
	}

	var lines []string

	switch {
	case r.Temp > 38:
		lines = append(lines, "High temperature alert! Irrigate crops in early morning or evening to prevent heat stress.")
	case r.Temp < 10:
		lines = append(lines, "Cold weather! Protect frost-sensitive crops with mulching or poly covers.")
	default:
		lines = append(lines, "Temperature is suitable for most crops.")
	}

	if r.Humidity > 80 {
		lines = append(lines, "High humidity - high risk of fungal diseases. Apply preventive fungicide spray.")
	} else if r.Humidity < 30 {
		lines = append(lines, "Low humidity - increase irrigation frequency to prevent moisture stress.")
	}

	switch {
	case r.WindKmh > 30:
		lines = append(lines, "Strong winds - avoid spraying. Stake tall crops to prevent lodging.")
	case r.WindKmh > 15:
		lines = append(lines, "Moderate winds - spray only if wind is below 10 km/h.")
	default:
		lines = append(lines, "Wind speed is suitable for pesticide/fertilizer spraying.")
	}

	if strings.Contains(r.Condition, "Rain") {
		lines = append(lines, "Rainy weather - avoid spraying. Ensure proper field drainage.")
	} else if strings.Contains(r.Condition, "Clear") || strings.Contains(r.Condition, "Sunny") {
		lines = append(lines, "Clear weather - good for harvesting, threshing and field operations.")
	}

	return strings.Join(lines, "\n")
}
