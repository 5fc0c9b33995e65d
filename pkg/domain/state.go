package domain

// NoStepIndex marks a navigation state that was never initialized.
// It must never be used to index into Steps.
const NoStepIndex = -1

// NavigationState is the in-progress position within a step sequence.
// It is saved verbatim on suspension and restored verbatim on resumption.
type NavigationState struct {
	// RecipeID and RecipeName label the sequence for titles and listings.
	RecipeID   int64  `json:"recipe_id,omitempty"`
	RecipeName string `json:"recipe_name,omitempty"`

	Steps        []Step `json:"steps"`
	CurrentIndex int    `json:"current_index"`

	// Sealed carries an encrypted copy of the whole state when the store
	// is wrapped by an encrypting middleware. Steps is empty in that case.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewNavigationState creates a state positioned at startIndex of the recipe's steps.
func NewNavigationState(recipe Recipe, startIndex int) *NavigationState {
	return &NavigationState{
		RecipeID:     recipe.ID,
		RecipeName:   recipe.Name,
		Steps:        recipe.Steps,
		CurrentIndex: startIndex,
	}
}

// Validate checks the navigation invariant: a non-empty sequence and an in-range index.
func (s *NavigationState) Validate() error {
	return ValidatePosition(len(s.Steps), s.CurrentIndex)
}

// Snapshot returns a deep copy of the state.
func (s *NavigationState) Snapshot() *NavigationState {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Steps != nil {
		cp.Steps = make([]Step, len(s.Steps))
		copy(cp.Steps, s.Steps)
	}
	if s.Sealed != nil {
		cp.Sealed = append([]byte(nil), s.Sealed...)
	}
	return &cp
}

// ValidatePosition checks that index addresses one of total steps.
func ValidatePosition(total, index int) error {
	if total == 0 {
		return ErrNoSteps
	}
	if index == NoStepIndex || index < 0 || index >= total {
		return ErrInvalidStepIndex
	}
	return nil
}
