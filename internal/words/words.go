package words

import "math/rand"

// Pool is the static word pool offered to drawers.
var Pool = []string{
	"apple", "banana", "car", "dog", "elephant", "fish", "guitar", "house",
	"ice cream", "jacket", "kite", "lion", "mountain", "notebook", "ocean",
	"pizza", "queen", "rainbow", "sun", "tree", "umbrella", "violin",
	"whale", "xylophone", "yacht", "zebra", "airplane", "butterfly", "castle",
	"dragon", "football", "hamburger", "island", "jellyfish", "kangaroo",
}

// Options returns n distinct random words from the pool. Asking for more
// words than the pool holds returns the whole pool shuffled.
func Options(n int) []string {
	if n <= 0 {
		return nil
	}

	shuffled := make([]string, len(Pool))
	copy(shuffled, Pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
