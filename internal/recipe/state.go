package recipe

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the conversation state threaded through one pipeline run. It is
// mutated by replacement only: every With* helper returns a copy, the
// original value is never written in place. Messages accumulate by append;
// every other field is replaced wholesale by the stage that owns it.
type State struct {
	Messages []Message `json:"messages"`

	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	MaxCookingTime      *int     `json:"max_cooking_time"`
	CuisinePreference   string   `json:"cuisine_preference"`

	MatchedRecipes []Scored `json:"matched_recipes"`
}

// WithMessage appends one turn to the history.
func (s State) WithMessage(role, content string) State {
	msgs := make([]Message, 0, len(s.Messages)+1)
	msgs = append(msgs, s.Messages...)
	msgs = append(msgs, Message{Role: role, Content: content})
	s.Messages = msgs
	return s
}

// WithPreferences replaces the four preference fields.
func (s State) WithPreferences(p Preferences) State {
	s.Ingredients = p.Ingredients
	s.DietaryRestrictions = p.DietaryRestrictions
	s.MaxCookingTime = p.MaxCookingTime
	s.CuisinePreference = p.CuisinePreference
	return s
}

// WithMatches replaces the candidate set. Matches are cleared and replaced at
// each relevant stage, never merged across turns.
func (s State) WithMatches(matches []Scored) State {
	s.MatchedRecipes = matches
	return s
}

// Preferences returns the preference fields currently held by the state.
func (s State) Preferences() Preferences {
	return Preferences{
		Ingredients:         s.Ingredients,
		DietaryRestrictions: s.DietaryRestrictions,
		MaxCookingTime:      s.MaxCookingTime,
		CuisinePreference:   s.CuisinePreference,
	}
}

// LastMessage returns the most recent turn, if any.
func (s State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
