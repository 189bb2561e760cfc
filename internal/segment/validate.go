package segment

// Validate checks that result covers every catalog key and that the winners'
// document positions strictly increase in catalog order.
func Validate(result MatchResult, c *Catalog) error {
	var missing []string
	for _, key := range c.Keys() {
		if _, ok := result[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &MissingSectionError{Keys: missing}
	}

	ordered := result.Ordered(c)
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Position >= ordered[i].Position {
			return &OutOfOrderError{Earlier: ordered[i-1], Later: ordered[i]}
		}
	}
	return nil
}
