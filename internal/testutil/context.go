package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// TestContext is a telebot context recording what handlers send.
// Methods it does not override panic through the nil embedded Context.
type TestContext struct {
	tele.Context

	User      *tele.User
	Msg       *tele.Message
	Cb        *tele.Callback
	Store     map[string]interface{}
	Sent      []interface{}
	Responses []*tele.CallbackResponse
}

// NewTestContext creates a context for a text message from userID
func NewTestContext(userID int64, text string) *TestContext {
	return &TestContext{
		User:  &tele.User{ID: userID},
		Msg:   &tele.Message{Text: text},
		Store: make(map[string]interface{}),
	}
}

// NewTestCallbackContext creates a context for an inline button press carrying data
func NewTestCallbackContext(userID int64, data string) *TestContext {
	c := NewTestContext(userID, "")
	c.Cb = &tele.Callback{ID: "cb-1", Data: data, Message: c.Msg}
	return c
}

func (c *TestContext) Sender() *tele.User {
	return c.User
}

func (c *TestContext) Text() string {
	if c.Msg == nil {
		return ""
	}
	return c.Msg.Text
}

func (c *TestContext) Callback() *tele.Callback {
	return c.Cb
}

func (c *TestContext) Set(key string, val interface{}) {
	c.Store[key] = val
}

func (c *TestContext) Get(key string) interface{} {
	return c.Store[key]
}

func (c *TestContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	return nil
}

func (c *TestContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, resp...)
	return nil
}

// LastSent returns the last sent text, or "" when nothing was sent
func (c *TestContext) LastSent() string {
	if len(c.Sent) == 0 {
		return ""
	}
	text, _ := c.Sent[len(c.Sent)-1].(string)
	return text
}
