package questiongen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every generated question. A question
	// failing any of them is dropped from the batch.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxCount caps the number of questions requested in one call.
	MaxCount int

	// MaxPriorQuestions is the maximum number of existing prompts listed
	// in the request for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxCount:          20,
		MaxPriorQuestions: 15,
	}
}
