package analysis

import "fmt"

// interpretCorrelation renders the presentation sentence for a factor's
// correlation. Wording is keyed off the factor's domain tag; it is a
// readability heuristic, not a statistical statement.
func interpretCorrelation(domain FactorDomain, name string, r, p float64) string {
	if p >= significanceLevel {
		return fmt.Sprintf("No significant relationship found between %s and symptoms.", name)
	}

	strength := strengthOf(r)

	switch domain {
	case DomainWeather:
		if r < 0 {
			return fmt.Sprintf("Lower %s is associated with worse symptoms (%s correlation). Consider monitoring pressure changes.", name, strength)
		}
		return fmt.Sprintf("Higher %s is associated with worse symptoms (%s correlation).", name, strength)

	case DomainSleep:
		if r < 0 {
			return fmt.Sprintf("Better sleep is associated with fewer/milder symptoms (%s correlation). Prioritize sleep quality.", strength)
		}
		return "Interestingly, better sleep metrics correlate with more symptoms. This may indicate sleeping more when unwell."

	case DomainAlcohol:
		if r > 0 {
			return fmt.Sprintf("Alcohol consumption is associated with worse symptoms (%s correlation). Consider reducing intake.", strength)
		}

	case DomainExercise:
		if r < 0 {
			return fmt.Sprintf("More exercise is associated with fewer symptoms (%s correlation). Keep up the activity!", strength)
		}
		return fmt.Sprintf("More exercise correlates with more symptoms (%s correlation). This might indicate overexertion as a trigger.", strength)

	case DomainCaffeine:
		if r > 0 {
			return fmt.Sprintf("Caffeine is associated with worse symptoms (%s correlation). Consider cutting back.", strength)
		}
	}

	direction := "higher"
	if r < 0 {
		direction = "lower"
	}
	return fmt.Sprintf("%s shows a %s %s correlation with symptoms.", name, strength, direction)
}

// interpretLag renders the sentence for a lag correlation result.
func interpretLag(name string, lag int, r, p float64) string {
	if lag == 0 {
		return interpretCorrelationAtLagZero(name, r, p)
	}
	if p >= significanceLevel {
		return fmt.Sprintf("%s shows a possible delayed effect %d day(s) later, but it does not reach significance.", name, lag)
	}
	direction := "worse"
	if r < 0 {
		direction = "milder"
	}
	return fmt.Sprintf("Higher %s tends to precede %s symptoms %d day(s) later (%s correlation).", name, direction, lag, strengthOf(r))
}

func interpretCorrelationAtLagZero(name string, r, p float64) string {
	if p >= significanceLevel {
		return fmt.Sprintf("%s shows its strongest association on the same day, but it does not reach significance.", name)
	}
	direction := "worse"
	if r < 0 {
		direction = "milder"
	}
	return fmt.Sprintf("%s is associated with %s symptoms on the same day (%s correlation).", name, direction, strengthOf(r))
}
