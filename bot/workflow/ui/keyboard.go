package ui

import (
	"ChineseBee/bot/workflow"
)

// Item is a button whose callback data is an encoded token.
type Item struct {
	Text  string
	Token workflow.Token
}

// Keyboard builds inline keyboards from tokens. The first encoding error is
// kept and returned by Rows, so screens are assembled without error checks per button.
type Keyboard struct {
	rows [][]workflow.Button
	err  error
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Row adds a row of token buttons.
func (k *Keyboard) Row(items ...Item) *Keyboard {
	if len(items) == 0 {
		return k
	}
	row := make([]workflow.Button, 0, len(items))
	for _, item := range items {
		btn, err := TokenButton(item.Text, item.Token)
		if err != nil {
			if k.err == nil {
				k.err = err
			}
			continue
		}
		row = append(row, btn)
	}
	k.rows = append(k.rows, row)
	return k
}

// Button adds a single token button on its own row.
func (k *Keyboard) Button(text string, t workflow.Token) *Keyboard {
	return k.Row(Item{Text: text, Token: t})
}

// WebApp adds a button that opens a Telegram web app.
func (k *Keyboard) WebApp(text, url string) *Keyboard {
	k.rows = append(k.rows, []workflow.Button{{Text: text, WebApp: url}})
	return k
}

// Rows returns the keyboard layout or the first encoding error.
func (k *Keyboard) Rows() ([][]workflow.Button, error) {
	if k.err != nil {
		return nil, k.err
	}
	return k.rows, nil
}

// TokenButton encodes a token into a callback button.
func TokenButton(text string, t workflow.Token) (workflow.Button, error) {
	data, err := workflow.Encode(t)
	if err != nil {
		return workflow.Button{}, err
	}
	return workflow.Button{Text: text, Data: data}, nil
}
