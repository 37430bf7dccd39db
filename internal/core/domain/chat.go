package domain

// Chat roles as they appear in conversation history and exports.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single (role, content) entry in a conversation.
// History is an ordered, append-only sequence of turns.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnPair is one completed chat exchange. Pairs are committed to
// history atomically: either both turns are appended or neither is.
type TurnPair struct {
	User      Turn
	Assistant Turn
}

// NewTurnPair builds a committed exchange from the user message and
// the assistant's reply.
func NewTurnPair(userMsg, reply string) TurnPair {
	return TurnPair{
		User:      Turn{Role: RoleUser, Content: userMsg},
		Assistant: Turn{Role: RoleAssistant, Content: reply},
	}
}
