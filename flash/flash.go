// Package flash is the per-client session channel: one-time status messages
// and remembered values, carried in the signed session cookie.
package flash

import (
	"encoding/gob"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	Success = "success"
	Danger  = "danger"
	Info    = "info"
)

type Message struct {
	Text     string
	Category string
}

func init() {
	gob.Register(Message{})
}

// Add queues a message for the next rendered page.
func Add(c *gin.Context, text, category string) error {
	session := sessions.Default(c)
	session.AddFlash(Message{Text: text, Category: category})
	return session.Save()
}

// Drain returns every queued message and removes them from the session.
func Drain(c *gin.Context) []Message {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		slog.Error("saving session after draining flashes", "err", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, r := range raw {
		switch m := r.(type) {
		case Message:
			messages = append(messages, m)
		case string:
			messages = append(messages, Message{Text: m, Category: Info})
		}
	}
	return messages
}

// GetString reads a remembered session value.
func GetString(c *gin.Context, key string) (string, bool) {
	v, ok := sessions.Default(c).Get(key).(string)
	return v, ok
}

func SetString(c *gin.Context, key, value string) error {
	session := sessions.Default(c)
	session.Set(key, value)
	return session.Save()
}
