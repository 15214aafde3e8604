package assist

// Config holds content assist generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Count is how many flashcards or questions to ask for.
	Count int

	// MaxContentChars truncates the lesson text sent in the prompt.
	MaxContentChars int
}

// DefaultConfig returns sensible defaults for content assist.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       1500,
		Temperature:     0.4,
		Count:           4,
		MaxContentChars: 6000,
	}
}
