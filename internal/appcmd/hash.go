package appcmd

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Hash returns a deterministic SHA-1 over the definition's stable wire
// fields. The sync protocol compares hashes to skip re-registering commands
// that have not changed.
func (c *Command) Hash() string {
	return HashApplication(c.ToApplication())
}

// HashApplication hashes a raw platform descriptor the same way, so remote
// listings and local definitions compare under one scheme.
func HashApplication(ac *discordgo.ApplicationCommand) string {
	stable := map[string]any{
		"name":        ac.Name,
		"description": ac.Description,
		"type":        ac.Type,
		"options":     stableOptions(ac.Options),
	}
	data, err := json.Marshal(stable)
	if err != nil {
		// Marshal of maps/slices of plain values cannot fail; keep the
		// signature simple.
		return ""
	}
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func stableOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	out := make([]map[string]any, 0, len(opts))
	for _, o := range opts {
		m := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, 0, len(o.Choices))
			for _, c := range o.Choices {
				choices = append(choices, map[string]any{"name": c.Name, "value": c.Value})
			}
			m["choices"] = choices
		}
		if len(o.Options) > 0 {
			m["options"] = stableOptions(o.Options)
		}
		out = append(out, m)
	}
	return out
}
