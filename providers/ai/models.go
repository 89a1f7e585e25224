package ai

// Role identifies who authored a message in a conversation.
type Role string

const (
	// RoleUser marks a message written by the end user.
	RoleUser Role = "user"
	// RoleAI marks a message produced by the model.
	RoleAI Role = "ai"
	// RoleRolePlay marks an instruction that frames how the model should
	// behave for the rest of the conversation.
	RoleRolePlay Role = "role_play"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Prompt is the provider-agnostic input to a single request: an ordered list
// of messages. Build one with Ask, AskWithRolePlay or FromConversation; the
// vendor packages convert it to their own wire format.
type Prompt struct {
	messages []Message
}

// Ask builds a single-question prompt.
func Ask(question string) Prompt {
	return Prompt{messages: []Message{{Role: RoleUser, Content: question}}}
}

// AskWithRolePlay builds a prompt that frames the question with a role-play
// instruction delivered before it.
func AskWithRolePlay(question, rolePlay string) Prompt {
	return Prompt{messages: []Message{
		{Role: RoleRolePlay, Content: rolePlay},
		{Role: RoleUser, Content: question},
	}}
}

// FromConversation builds a prompt from an accumulated conversation.
func FromConversation(conversation Conversation) Prompt {
	messages := make([]Message, len(conversation.messages))
	copy(messages, conversation.messages)
	return Prompt{messages: messages}
}

// Messages returns the prompt's messages in order.
func (p Prompt) Messages() []Message {
	return p.messages
}

// Conversation accumulates an ordered exchange of messages across turns.
// The zero value is ready to use.
type Conversation struct {
	messages []Message
}

// AddRolePlayMessage appends a role-play framing instruction.
func (c *Conversation) AddRolePlayMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleRolePlay, Content: content})
}

// AddUserMessage appends a user turn.
func (c *Conversation) AddUserMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleUser, Content: content})
}

// AddAIMessage appends a model turn.
func (c *Conversation) AddAIMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleAI, Content: content})
}

// Messages returns the conversation's messages in order.
func (c *Conversation) Messages() []Message {
	return c.messages
}
