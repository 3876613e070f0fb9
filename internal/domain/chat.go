package domain

// ChatRole represents the role of a chat message.
type ChatRole string

const (
	ChatRole_User      ChatRole = "user"
	ChatRole_Assistant ChatRole = "assistant"
	ChatRole_System    ChatRole = "system"
)

// ChatAnswer is the result of one product chat question: the composed answer
// text plus the catalog items it was grounded on.
type ChatAnswer struct {
	Answer  string
	Sources []Product
}
