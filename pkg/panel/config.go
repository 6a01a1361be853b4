package panel

import (
	"bytes"
	"os"

	"github.com/gameport/gameportctl/pkg/gameport"
	"github.com/gameport/gameportctl/pkg/sysenv"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const configFileMode os.FileMode = 0600

// Config is the panel configuration persisted to /etc/gameport/config.yml.
// It is the durable source of truth for the panel secrets, so provisioning
// always reads it back before deciding to generate anything.
type Config struct {
	App           AppConfig           `yaml:"app"`
	Database      DatabaseConfig      `yaml:"database"`
	Cache         CacheConfig         `yaml:"cache"`
	Storage       StorageConfig       `yaml:"storage"`
	Orchestration OrchestrationConfig `yaml:"orchestration"`
	Auth          AuthConfig          `yaml:"auth"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
	SecretKey   string `yaml:"secretKey"`
}

type DatabaseConfig struct {
	Client     string           `yaml:"client"`
	Connection ConnectionConfig `yaml:"connection"`
}

type ConnectionConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
	Filename string `yaml:"filename,omitempty"`
}

type CacheConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type OrchestrationConfig struct {
	Socket string `yaml:"socket,omitempty"`
}

type AuthConfig struct {
	Secret string `yaml:"secret"`
}

func ParseConfig(contents []byte) (Config, error) {
	var cfg Config
	err := yaml.Unmarshal(contents, &cfg)
	if err != nil {
		return Config{}, errors.WithMessage(err, "failed to unmarshal panel config")
	}

	return cfg, nil
}

func (cfg Config) Marshal() ([]byte, error) {
	contents, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal panel config")
	}

	return contents, nil
}

// PersistConfig writes cfg to path with a backup of the previous contents.
// An unchanged file is left alone apart from healing its mode and owner.
func PersistConfig(env sysenv.Environment, cfg Config, path string) error {
	contents, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if env.FileExists(path) {
		current, err := env.ReadFile(path)
		if err != nil {
			return errors.WithMessage(err, "failed to read panel config")
		}

		if bytes.Equal(current, contents) {
			err = env.Chmod(path, configFileMode)
			if err != nil {
				return errors.WithMessage(err, "failed to chmod panel config")
			}

			return env.Chown(path, gameport.DefaultUser, gameport.DefaultGroup)
		}

		err = env.Copy(path, path+".bak")
		if err != nil {
			return errors.WithMessage(err, "failed to back up panel config")
		}
	}

	err = env.WriteFileAtomic(path, contents, configFileMode)
	if err != nil {
		return errors.WithMessage(err, "failed to write panel config")
	}

	return env.Chown(path, gameport.DefaultUser, gameport.DefaultGroup)
}
