package domain

// breederRank orders breeding evidence from weakest to strongest.
var breederRank = map[BreederLevel]int{
	BreederPossible: 1,
	BreederProbable: 2,
	BreederCertain:  3,
}

var breederDisplay = map[BreederLevel]string{
	BreederPossible: "Nicheur possible",
	BreederProbable: "Nicheur probable",
	BreederCertain:  "Nicheur certain",
}

// BreedingStatus derives the display string for the strongest breeding
// evidence carried by the given behaviors. Empty when none of them carries
// any.
func BreedingStatus(behaviors []Behavior) string {
	best := BreederLevel("")
	for _, b := range behaviors {
		if b.Breeder == nil {
			continue
		}
		if breederRank[*b.Breeder] > breederRank[best] {
			best = *b.Breeder
		}
	}
	if best == "" {
		return ""
	}
	return breederDisplay[best]
}
