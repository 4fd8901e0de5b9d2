package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case Party:
		o.printParty(v)
	case GuessResult:
		o.printGuessResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinResult combines the minted connection ID and party state
type JoinResult struct {
	ConnectionID string `json:"connection_id"`
	Party        Party  `json:"party"`
}

// Party response type
type Party struct {
	Code    string        `json:"code"`
	Started bool          `json:"started"`
	Word    string        `json:"word,omitempty"`
	Members []PartyMember `json:"members"`
}

// PartyMember response type
type PartyMember struct {
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	Finished bool    `json:"finished"`
	IsHost   bool    `json:"is_host"`
	Lost     bool    `json:"lost,omitempty"`
	Total    float64 `json:"total_time,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Guess    string   `json:"guess"`
	Feedback []string `json:"feedback"`
	From     string   `json:"from"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinResult(r JoinResult) {
	fmt.Printf("Joined party %s\n", r.Party.Code)
	fmt.Printf("Connection ID: %s\n", r.ConnectionID)
	o.printParty(r.Party)
}

func (o *Output) printParty(p Party) {
	state := "waiting"
	if p.Started {
		state = "running"
	}
	fmt.Printf("Party %s (%s)\n", p.Code, state)
	if p.Word != "" {
		fmt.Printf("Word: %s\n", p.Word)
	}
	fmt.Println("Members:")
	for _, m := range p.Members {
		var tags []string
		if m.IsHost {
			tags = append(tags, "host")
		}
		if m.Finished {
			tags = append(tags, "finished")
		}
		if m.Lost {
			tags = append(tags, "lost")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  %s  score=%d%s\n", m.Name, m.Score, suffix)
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	fmt.Printf("Guess: %s\n", r.Guess)
	fmt.Printf("Marks: %s\n", strings.Join(r.Feedback, " "))
}

func (o *Output) printHealthResult(r HealthResult) {
	fmt.Printf("Status: %s\n", r.Status)
}
