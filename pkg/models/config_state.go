package models

// LLMConfigState holds the user-tunable settings sent with every query.
type LLMConfigState struct {
	SelectedLLM          string  `json:"selectedLLM"`
	SelectedDataPro      string  `json:"selectedDataPro"`
	IntentChecked        bool    `json:"intentChecked"`
	ComplexChecked       bool    `json:"complexChecked"`
	AnswerInsightChecked bool    `json:"answerInsightChecked"`
	ContextWindow        bool    `json:"contextWindow"`
	ModelSuggestChecked  bool    `json:"modelSuggestChecked"`
	Temperature          float64 `json:"temperature" binding:"gte=0"`
	TopP                 float64 `json:"topP" binding:"gte=0,lte=1"`
	TopK                 int     `json:"topK" binding:"gte=0"`
	MaxLength            int     `json:"maxLength" binding:"gte=0"`
}

// DefaultLLMConfig returns the settings a new session starts with.
func DefaultLLMConfig() LLMConfigState {
	return LLMConfigState{
		SelectedLLM:          DefaultModelID,
		IntentChecked:        true,
		ComplexChecked:       true,
		AnswerInsightChecked: false,
		ContextWindow:        false,
		ModelSuggestChecked:  false,
		Temperature:          0.1,
		TopP:                 1,
		TopK:                 250,
		MaxLength:            2048,
	}
}

func (c LLMConfigState) Validate() error {
	if err := validateStruct("queryConfig", c); err != nil {
		return err
	}
	if !finite(c.Temperature) {
		return invalidf("queryConfig: temperature %v is not finite", c.Temperature)
	}
	if !finite(c.TopP) {
		return invalidf("queryConfig: topP %v is not finite", c.TopP)
	}
	return nil
}
