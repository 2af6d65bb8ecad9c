package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
	Open   Open   `yaml:"openCreation"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	ExportTTL     int    `yaml:"exportTTL"` // seconds, 0 means default
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Auth struct {
	Secret   string `yaml:"secret"`
	Audience string `yaml:"audience"`
}

// Open toggles whether plain users may create records of each kind.
// Administrators are never restricted by these.
type Open struct {
	Observers    bool `yaml:"observers"`
	Departments  bool `yaml:"departments"`
	Towns        bool `yaml:"towns"`
	Localities   bool `yaml:"localities"`
	Weathers     bool `yaml:"weathers"`
	Classes      bool `yaml:"classes"`
	Species      bool `yaml:"species"`
	Ages         bool `yaml:"ages"`
	Sexes        bool `yaml:"sexes"`
	Behaviors    bool `yaml:"behaviors"`
	Environments bool `yaml:"environments"`
	Distances    bool `yaml:"distances"`
	Numbers      bool `yaml:"numbers"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}

	return config, nil
}
