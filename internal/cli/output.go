package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/mcoot/teamsplit/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	switch o.format {
	case FormatJSON:
		o.printJSON(o.out, data)
	case FormatYAML:
		o.printYAML(o.out, data)
	default:
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	errData := ErrorOutput{Error: ErrorDetail{Message: err.Error()}}
	switch o.format {
	case FormatJSON:
		o.printJSON(o.errOut, errData)
	case FormatYAML:
		o.printYAML(o.errOut, errData)
	default:
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	switch o.format {
	case FormatJSON:
		o.printJSON(o.out, Message{Message: msg})
	case FormatYAML:
		o.printYAML(o.out, Message{Message: msg})
	default:
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(w io.Writer, data any) {
	b, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
		return
	}
	fmt.Fprintln(w, string(b))
}

func (o *Output) printYAML(w io.Writer, data any) {
	b, err := yaml.Marshal(data)
	if err != nil {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
		return
	}
	_, _ = w.Write(b)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GroupList:
		o.printGroupList(v)
	case Group:
		fmt.Fprintf(o.out, "Created group: %s\n", v.Name)
	case PlayerList:
		o.printPlayerList(v)
	case Player:
		fmt.Fprintf(o.out, "Added %s to %s\n", v.Name, v.Team)
	case SweepResult:
		o.printSweepResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(o.out, data)
	}
}

// GroupList response type (matches API)
type GroupList struct {
	Groups []string `json:"groups" yaml:"groups"`
}

// Group response type
type Group struct {
	Name string `json:"name" yaml:"name"`
}

// Player response type
type Player struct {
	Name string `json:"name" yaml:"name"`
	Team string `json:"team" yaml:"team"`
}

func playerFromModel(p model.Player) Player {
	return Player{Name: p.Name, Team: p.Team.String()}
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players" yaml:"players"`
}

// SweepResult response type
type SweepResult struct {
	Removed []string `json:"removed" yaml:"removed"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status" yaml:"status"`
	Storage string `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// Message is a plain confirmation
type Message struct {
	Message string `json:"message" yaml:"message"`
}

// ErrorOutput is the structured form of a command error
type ErrorOutput struct {
	Error ErrorDetail `json:"error" yaml:"error"`
}

// ErrorDetail carries the error text
type ErrorDetail struct {
	Message string `json:"message" yaml:"message"`
}

func (o *Output) printGroupList(l GroupList) {
	if len(l.Groups) == 0 {
		fmt.Fprintln(o.out, "No groups")
		return
	}
	fmt.Fprintf(o.out, "Groups (%d):\n", len(l.Groups))
	for _, g := range l.Groups {
		fmt.Fprintf(o.out, "  - %s\n", g)
	}
}

func (o *Output) printPlayerList(l PlayerList) {
	if len(l.Players) == 0 {
		fmt.Fprintln(o.out, "No players")
		return
	}

	// Group by team, keeping insertion order within each team
	byTeam := make(map[string][]string)
	var teams []string
	for _, p := range l.Players {
		if _, seen := byTeam[p.Team]; !seen {
			teams = append(teams, p.Team)
		}
		byTeam[p.Team] = append(byTeam[p.Team], p.Name)
	}

	for _, team := range teams {
		names := byTeam[team]
		fmt.Fprintf(o.out, "%s (%d): %s\n", team, len(names), strings.Join(names, ", "))
	}
}

func (o *Output) printSweepResult(r SweepResult) {
	if len(r.Removed) == 0 {
		fmt.Fprintln(o.out, "No orphaned player lists")
		return
	}
	fmt.Fprintf(o.out, "Removed %d orphaned player list(s):\n", len(r.Removed))
	for _, key := range r.Removed {
		fmt.Fprintf(o.out, "  - %s\n", key)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.out, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.out, "Storage: %s\n", h.Storage)
	}
}
