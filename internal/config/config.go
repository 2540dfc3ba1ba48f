package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
		LogJSON bool   `yaml:"log_json"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"app"`

	LLM struct {
		Model           string `yaml:"model"`
		MaxOutputTokens int32  `yaml:"max_output_tokens"`
	} `yaml:"llm"`

	Customize struct {
		MaxInputChars int `yaml:"max_input_chars"`
	} `yaml:"customize"`

	JobText struct {
		PerHostRPS     float64 `yaml:"per_host_rps"`
		Burst          int     `yaml:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"jobtext"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
