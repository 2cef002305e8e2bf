package tutorial

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed content.yml
var defaultContent []byte

// Item is one tutorial page. Image is a URL, a Telegram file id or a file under the image directory.
type Item struct {
	Text  string `yaml:"text" validate:"required"`
	Image string `yaml:"image"`
}

// Content is the static text of the tutorial and the help screen.
type Content struct {
	Greeting   string   `yaml:"greeting" validate:"required"`
	Help       string   `yaml:"help" validate:"required"`
	CheatSheet []string `yaml:"cheat_sheet" validate:"max=10,dive,required"`
	Items      []Item   `yaml:"items" validate:"required,min=1,dive"`
}

// LoadContent reads the content file, or the built-in content when path is empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return ParseContent(defaultContent)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tutorial content: %w", err)
	}
	return ParseContent(data)
}

func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse tutorial content: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate tutorial content: %w", err)
	}
	return &c, nil
}

// GreetingFor puts the user's first name into the greeting.
func (c *Content) GreetingFor(name string) string {
	if name == "" {
		name = "друг"
	}
	return strings.ReplaceAll(c.Greeting, "{name}", name)
}
