package production

// TimeUnit converts cycle durations (seconds) into per-minute rates
const TimeUnit = 60.0

// DefaultEfficiency is the efficiency percentage of a recipe without an override
const DefaultEfficiency = 100.0

// Rate returns the throughput of facilityCount facilities each producing (or consuming)
// quantityPerCycle every cycleDuration seconds at efficiencyPercent efficiency.
//
//	rate = (TimeUnit / cycleDuration) * quantityPerCycle * (efficiencyPercent / 100) * facilityCount
func Rate(quantityPerCycle, cycleDuration float64, facilityCount int, efficiencyPercent float64) (float64, error) {
	if cycleDuration <= 0 {
		return 0, &ErrInvalidDuration{Duration: cycleDuration}
	}

	cyclesPerMinute := TimeUnit / cycleDuration
	return cyclesPerMinute * quantityPerCycle * (efficiencyPercent / 100) * float64(facilityCount), nil
}

// ValidateDuration checks a recipe's cycle duration
func ValidateDuration(recipe *Recipe) error {
	if recipe.Duration <= 0 {
		return &ErrInvalidDuration{Recipe: recipe.Name, Duration: recipe.Duration}
	}
	return nil
}
