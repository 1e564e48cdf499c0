package genesis

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// SceneConfig holds environment-driven settings for the optional scene
// infrastructure. Empty values leave the corresponding integration disabled.
type SceneConfig struct {
	RedisAddress   string `config:"REDIS_ADDRESS"`
	RedisPassword  string `config:"REDIS_PASSWORD"`
	SceneNamespace string `config:"SCENE_NAMESPACE"`
	StatsdAddress  string `config:"STATSD_ADDRESS"`
	LogLevel       string `config:"LOG_LEVEL"`
}

// GetSceneConfig loads SceneConfig from environment variables. Unset
// variables keep their defaults.
func GetSceneConfig() (SceneConfig, error) {
	cfg := SceneConfig{
		SceneNamespace: "scene",
		LogLevel:       "info",
	}
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load scene config")
	}
	return cfg, nil
}
