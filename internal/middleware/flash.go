package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// FlashCookie is the cookie carrying one-shot messages across a redirect.
const FlashCookie = "fyyur_flash"

const (
	flashIncomingKey = "flash.incoming"
	flashOutgoingKey = "flash.outgoing"
	flashConfigKey   = "flash.config"
)

// Flash categories understood by the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Message is a single flash message.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

type flashClaims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

type flashConfig struct {
	secret []byte
	ttl    time.Duration
}

// Flash loads messages from a valid flash cookie into the context and
// clears the cookie.  Tampered or expired cookies are dropped silently.
func Flash(secret string, ttl time.Duration) echo.MiddlewareFunc {
	fc := &flashConfig{secret: []byte(secret), ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(flashConfigKey, fc)
			if ck, err := c.Cookie(FlashCookie); err == nil && ck.Value != "" {
				if msgs, ok := fc.decode(ck.Value); ok {
					c.Set(flashIncomingKey, msgs)
				}
				c.SetCookie(&http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
			}
			return next(c)
		}
	}
}

func (fc *flashConfig) encode(msgs []Message) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(fc.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fc.secret)
}

func (fc *flashConfig) decode(raw string) ([]Message, bool) {
	var claims flashClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return fc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, false
	}
	return claims.Messages, true
}

// AddFlash queues a message for the next request.  The cookie is rewritten
// with every queued message so several calls in one request accumulate.
func AddFlash(c echo.Context, category, text string) {
	fc, ok := c.Get(flashConfigKey).(*flashConfig)
	if !ok {
		return
	}
	msgs, _ := c.Get(flashOutgoingKey).([]Message)
	msgs = append(msgs, Message{Category: category, Text: text})
	c.Set(flashOutgoingKey, msgs)
	raw, err := fc.encode(msgs)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(fc.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flashes returns the messages to show on this response: those carried in
// by the cookie plus any queued during this request.  Queued messages are
// consumed so the cookie does not replay them.
func Flashes(c echo.Context) []Message {
	in, _ := c.Get(flashIncomingKey).([]Message)
	out, _ := c.Get(flashOutgoingKey).([]Message)
	if len(out) > 0 {
		c.Set(flashOutgoingKey, nil)
		c.SetCookie(&http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return append(append([]Message{}, in...), out...)
}

// HasFlash reports whether the request carried flash messages in.
func HasFlash(c echo.Context) bool {
	in, _ := c.Get(flashIncomingKey).([]Message)
	return len(in) > 0
}
