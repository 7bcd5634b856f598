package graph

import "time"

// Conversation is one chat returned by the remote platform.
type Conversation struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	ChatType    string    `json:"chat_type"`
	LastUpdated time.Time `json:"last_updated"`
}

// Message is one chat message returned by the remote platform.
// AuthorName and Body may be empty: system events carry no user author
// and some message types carry no text content.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	AuthorName     string    `json:"author_name"`
	Body           string    `json:"body"`
	CreatedTime    time.Time `json:"created_time"`
}

// page is the Graph-shaped paginated envelope: a value array plus an
// optional next-link that is absent on the last page.
type page struct {
	Value    []wireItem `json:"value"`
	NextLink string     `json:"@odata.nextLink"`
}

// wireItem covers the fields we read from both chat and chatMessage
// resources; unused fields decode to their zero values.
type wireItem struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	ChatType        string    `json:"chatType"`
	LastUpdatedTime time.Time `json:"lastUpdatedDateTime"`
	CreatedTime     time.Time `json:"createdDateTime"`
	ChatID          string    `json:"chatId"`
	From            *wireFrom `json:"from"`
	Body            *wireBody `json:"body"`
}

type wireFrom struct {
	User *wireUser `json:"user"`
}

type wireUser struct {
	DisplayName string `json:"displayName"`
}

type wireBody struct {
	Content string `json:"content"`
}

func (w wireItem) toConversation() Conversation {
	return Conversation{
		ID:          w.ID,
		Topic:       w.Topic,
		ChatType:    w.ChatType,
		LastUpdated: w.LastUpdatedTime,
	}
}

func (w wireItem) toMessage(conversationID string) Message {
	msg := Message{
		ID:             w.ID,
		ConversationID: conversationID,
		CreatedTime:    w.CreatedTime,
	}
	if w.ChatID != "" {
		msg.ConversationID = w.ChatID
	}
	if w.From != nil && w.From.User != nil {
		msg.AuthorName = w.From.User.DisplayName
	}
	if w.Body != nil {
		msg.Body = w.Body.Content
	}
	return msg
}
