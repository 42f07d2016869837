package readable

// Decide returns Readable when positive is strictly greater than negative.
// Ties are NotReadable.
func Decide(positive, negative Score) Decision {
	if positive > negative {
		return Readable
	}
	return NotReadable
}
