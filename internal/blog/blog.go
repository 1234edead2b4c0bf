// Package blog runs one blog-generation interaction: validate the submitted
// form, fill the prompt template, invoke the generation provider once and
// shape the result for display and download.
package blog

import (
	"strings"

	"github.com/joestump/joe-blog/internal/prompt"
)

// State is a step of a single interaction.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvoking
	StateDisplaying
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvoking:
		return "invoking"
	case StateDisplaying:
		return "displaying"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Reason explains why an interaction ended in StateFailed.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonMissingAPIKey   Reason = "missing_api_key"
	ReasonEmptyTopic      Reason = "empty_topic"
	ReasonInvalidSettings Reason = "invalid_settings"
	ReasonTemplate        Reason = "template"
	ReasonGeneration      Reason = "generation"
)

// Notice levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notice is the user-facing message for a failed interaction.
type Notice struct {
	Level   string
	Message string
}

// Submission holds the form values of one "generate" action.
type Submission struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Template        string
	Topic           string
	Keyword         string
}

// Limits bound the generation parameters a user may choose.
type Limits struct {
	MinTemperature     float64
	MaxTemperature     float64
	TemperatureStep    float64
	MinMaxOutputTokens int
	MaxMaxOutputTokens int
	MaxOutputTokenStep int
}

// DefaultLimits are the slider bounds of the form.
var DefaultLimits = Limits{
	MinTemperature:     0.0,
	MaxTemperature:     1.0,
	TemperatureStep:    0.05,
	MinMaxOutputTokens: 256,
	MaxMaxOutputTokens: 4096,
	MaxOutputTokenStep: 128,
}

// DefaultTopic is prefilled for both topic and keyword.
const DefaultTopic = "structure of DBMS"

// Defaults returns the initial form values for a fresh session.
func Defaults(model string) Submission {
	return Submission{
		Model:           model,
		Temperature:     0.7,
		MaxOutputTokens: 2048,
		Template:        prompt.DefaultTemplate,
		Topic:           DefaultTopic,
		Keyword:         DefaultTopic,
	}
}

// DownloadFilename derives the download file name from a topic: spaces become
// hyphens, the result is lowercased and suffixed with "-blog.txt".
func DownloadFilename(topic string) string {
	return strings.ToLower(strings.ReplaceAll(topic, " ", "-")) + "-blog.txt"
}
