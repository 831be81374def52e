// Package input holds the text of the URL field.
package input

import "unicode/utf8"

// Controller holds the current URL text. It performs no validation; the
// displayed field value is always URL().
type Controller struct {
	url string
}

// NewController creates a controller with initial text
func NewController(initial string) *Controller {
	return &Controller{url: initial}
}

// SetURL replaces the text
func (c *Controller) SetURL(text string) {
	c.url = text
}

// URL returns the current text
func (c *Controller) URL() string {
	return c.url
}

// InsertRunes appends typed or pasted runes
func (c *Controller) InsertRunes(runes []rune) {
	c.SetURL(c.url + string(runes))
}

// Backspace removes the last rune
func (c *Controller) Backspace() {
	if c.url == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.url)
	c.SetURL(c.url[:len(c.url)-size])
}

// Clear empties the field
func (c *Controller) Clear() {
	c.SetURL("")
}
