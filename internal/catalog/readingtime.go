package catalog

import (
	"fmt"
	"strings"
)

// DefaultWordsPerMinute is the average reading speed assumed when the
// catalog configuration does not override it.
const DefaultWordsPerMinute = 200

// ReadingTime is the derived consumption estimate for one post body.
type ReadingTime struct {
	Words   int
	Minutes int
	Display string
}

// EstimateReadingTime derives word count and estimated minutes from the raw
// Markdown body. Words are whitespace-delimited tokens; minutes round up so
// any non-empty body reads as at least one minute.
func EstimateReadingTime(body []byte, wordsPerMinute int) ReadingTime {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute

	return ReadingTime{
		Words:   words,
		Minutes: minutes,
		Display: fmt.Sprintf("%d min read", minutes),
	}
}
