package engine

// DrawerBonus is awarded to the drawer for every correct guess received.
const DrawerBonus = 10

// guessPoints maps guess order to points; later guessers get the flat rate.
var guessPoints = [...]int{100, 80, 60, 40, 20}

const latePoints = 10

// PointsForGuess returns the award for the guesser at zero-based position.
func PointsForGuess(position int) int {
	if position < 0 {
		return 0
	}
	if position < len(guessPoints) {
		return guessPoints[position]
	}
	return latePoints
}
