package models

// SupportedLLM is a Bedrock model the prompt layer ships templates for.
// PromptKey names its entry in the prompt tables.
type SupportedLLM struct {
	ID        string `json:"id"`
	PromptKey string `json:"promptKey"`
}

const DefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

var SupportedLLMs = []SupportedLLM{
	{ID: "anthropic.claude-3-haiku-20240307-v1:0", PromptKey: "haiku-20240307v1-0"},
	{ID: "anthropic.claude-3-sonnet-20240229-v1:0", PromptKey: "sonnet-20240229v1-0"},
	{ID: "anthropic.claude-3-5-sonnet-20240620-v1:0", PromptKey: "sonnet-3-5-20240620v1-0"},
	{ID: "mistral.mixtral-8x7b-instruct-v0:1", PromptKey: "mixtral-8x7b-instruct-0"},
	{ID: "meta.llama3-70b-instruct-v1:0", PromptKey: "llama3-70b-instruct-0"},
}

func IsSupportedLLM(id string) bool {
	_, ok := ModelPromptKey(id)
	return ok
}

// ModelPromptKey returns the prompt table key for a model id.
func ModelPromptKey(id string) (string, bool) {
	for _, m := range SupportedLLMs {
		if m.ID == id {
			return m.PromptKey, true
		}
	}
	return "", false
}
