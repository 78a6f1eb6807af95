// Package command interprets external intents. Two input shapes exist:
// free-form transcribed utterances matched against a small fixed phrase
// grammar (degraded/offline voice mode), and structured tool calls with a
// name and argument mapping (connected voice mode). Each input maps onto
// exactly one state transition, or a no-op.
package command

import "strings"

// Command is the tagged-variant decoded form of one external intent.
type Command interface {
	isCommand()
}

// ToggleView switches the gallery display mode. Display mode lives outside
// the persisted state tree.
type ToggleView struct{}

// ToggleLanguage switches the UI locale.
type ToggleLanguage struct{}

// CreateFolderAndMove is the free-form "create folder <name>" compound:
// create the folder, then move the batch / open image / visible set into it.
type CreateFolderAndMove struct {
	Name string
}

// Search is the free-form fallback: the whole utterance becomes the query.
type Search struct {
	Query string
}

// CreateFolder is the structured create_folder tool call.
type CreateFolder struct {
	Name string
}

// SearchItems is the structured search_items tool call.
type SearchItems struct {
	Query string
}

// Unrecognized is any malformed or unknown tool call. It is swallowed.
type Unrecognized struct {
	Name string
}

func (ToggleView) isCommand()          {}
func (ToggleLanguage) isCommand()      {}
func (CreateFolderAndMove) isCommand() {}
func (Search) isCommand()              {}
func (CreateFolder) isCommand()        {}
func (SearchItems) isCommand()         {}
func (Unrecognized) isCommand()        {}

// Phrase grammar for the free-form path, English and Chinese variants.
// Ordered; first match wins.
var (
	viewPhrases     = []string{"switch view", "toggle view", "切换视图", "切换显示"}
	languagePhrases = []string{"switch language", "toggle language", "切换语言"}
	folderPrefixes  = []string{"create folder", "create a folder", "new folder", "make a folder", "创建文件夹", "新建文件夹"}
	namePrefixes    = []string{"called", "named", "叫"}
)

// ParseTranscript decodes a transcribed utterance. Matching is done on a
// lowercase-normalized copy; the search fallback carries the utterance
// verbatim (trimmed only).
func ParseTranscript(utterance string) Command {
	trimmed := strings.TrimSpace(utterance)
	lowered := strings.ToLower(trimmed)

	for _, p := range viewPhrases {
		if strings.Contains(lowered, p) {
			return ToggleView{}
		}
	}
	for _, p := range languagePhrases {
		if strings.Contains(lowered, p) {
			return ToggleLanguage{}
		}
	}
	for _, p := range folderPrefixes {
		if !strings.HasPrefix(lowered, p) {
			continue
		}
		// ASCII lowering preserves byte offsets, so the prefix length
		// indexes safely into the original string.
		name := strings.TrimSpace(trimmed[len(p):])
		for _, np := range namePrefixes {
			if rest, ok := strings.CutPrefix(name, np); ok {
				name = strings.TrimSpace(rest)
				break
			}
		}
		if name == "" {
			break
		}
		return CreateFolderAndMove{Name: name}
	}

	return Search{Query: trimmed}
}

// ToolCall is one structured instruction from the voice collaborator.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolStatus acknowledges a tool call, keyed by the call's id.
type ToolStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "ok" or "ignored"
}

// ParseToolCall decodes a structured tool call. Unknown names and
// malformed argument payloads decode to Unrecognized.
func ParseToolCall(call ToolCall) Command {
	switch call.Name {
	case "create_folder":
		name, ok := stringArg(call.Args, "name")
		if !ok || strings.TrimSpace(name) == "" {
			return Unrecognized{Name: call.Name}
		}
		return CreateFolder{Name: strings.TrimSpace(name)}
	case "search_items":
		query, ok := stringArg(call.Args, "query")
		if !ok {
			return Unrecognized{Name: call.Name}
		}
		return SearchItems{Query: query}
	default:
		return Unrecognized{Name: call.Name}
	}
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
