package config

import (
	"fmt"
	"strings"

	"github.com/Ayash-Bera/nlq-report/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Log struct {
		Level string
	}
	// Query seeds the configuration of a fresh UserState.
	Query models.LLMConfigState
}

// Load reads config.yaml from the working directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads config.yaml from dir. A missing file is not an error;
// environment variables (LOG_LEVEL, QUERY_TOP_K, ...) override both.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := models.DefaultLLMConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("query.selected_llm", defaults.SelectedLLM)
	v.SetDefault("query.selected_data_pro", defaults.SelectedDataPro)
	v.SetDefault("query.intent_checked", defaults.IntentChecked)
	v.SetDefault("query.complex_checked", defaults.ComplexChecked)
	v.SetDefault("query.answer_insight_checked", defaults.AnswerInsightChecked)
	v.SetDefault("query.context_window", defaults.ContextWindow)
	v.SetDefault("query.model_suggest_checked", defaults.ModelSuggestChecked)
	v.SetDefault("query.temperature", defaults.Temperature)
	v.SetDefault("query.top_p", defaults.TopP)
	v.SetDefault("query.top_k", defaults.TopK)
	v.SetDefault("query.max_length", defaults.MaxLength)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	config.Log.Level = v.GetString("log.level")
	config.Query = models.LLMConfigState{
		SelectedLLM:          v.GetString("query.selected_llm"),
		SelectedDataPro:      v.GetString("query.selected_data_pro"),
		IntentChecked:        v.GetBool("query.intent_checked"),
		ComplexChecked:       v.GetBool("query.complex_checked"),
		AnswerInsightChecked: v.GetBool("query.answer_insight_checked"),
		ContextWindow:        v.GetBool("query.context_window"),
		ModelSuggestChecked:  v.GetBool("query.model_suggest_checked"),
		Temperature:          v.GetFloat64("query.temperature"),
		TopP:                 v.GetFloat64("query.top_p"),
		TopK:                 v.GetInt("query.top_k"),
		MaxLength:            v.GetInt("query.max_length"),
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("query defaults: %w", err)
	}
	return nil
}

// DefaultState is the logged-out UserState built from the query defaults.
func (c *Config) DefaultState() models.UserState {
	return models.DefaultUserState(c.Query)
}
