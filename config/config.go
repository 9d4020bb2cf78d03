package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/catch2d/capture"
	"github.com/meghashyamc/catch2d/rotation"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"
const dotEnvFile = ".env"

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	setDefaults(viperConfig)
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	rp := rotation.DefaultParams()
	cp := capture.DefaultParams()

	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 480)
	v.SetDefault("window.title", "catch2d")
	v.SetDefault("log.level", "info")
	v.SetDefault("game.roll_duration_ms", rp.RollDuration.Milliseconds())
	v.SetDefault("game.pause_duration_ms", rp.PauseDuration.Milliseconds())
	v.SetDefault("game.big_rotation_duration_ms", rp.BigRotDuration.Milliseconds())
	v.SetDefault("game.big_rotation_cooldown_ms", rp.BigRotCooldown.Milliseconds())
	v.SetDefault("game.roll_angle_degrees", rp.RollAngle)
	v.SetDefault("game.big_rotation_angle_degrees", rp.BigRotAngle)
	v.SetDefault("game.capture_cooldown_ms", cp.CaptureCooldown.Milliseconds())
	v.SetDefault("game.failure_message_duration_ms", cp.FailureMessageDuration.Milliseconds())
	v.SetDefault("messages.taunt", cp.Taunt)
	v.SetDefault("messages.taunt_suffix", cp.TauntSuffix)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("sim.rounds", 10)
	v.SetDefault("sim.reaction_ms", 120)
	v.SetDefault("sim.jitter_ms", 60)
	v.SetDefault("sim.max_frames", 60*60*10)
}

// BindFlag lets a command-line flag override the config file value for key.
// The upper-case environment variable still takes precedence.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	if err := c.config.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s to %s: %w", flag.Name, key, err)
	}
	return nil
}

func (c *Config) GetWindowWidth() int {
	return c.getInt("WINDOW_WIDTH", "window.width")
}

func (c *Config) GetWindowHeight() int {
	return c.getInt("WINDOW_HEIGHT", "window.height")
}

func (c *Config) GetWindowTitle() string {
	return c.getString("WINDOW_TITLE", "window.title")
}

func (c *Config) GetLogLevel() string {
	return c.getString("LOG_LEVEL", "log.level")
}

// GetLogFile is where the terminal frontend writes its log. Empty disables logging there.
func (c *Config) GetLogFile() string {
	return c.getString("LOG_FILE", "log.file")
}

// GetSeed returns the random seed for the big rotation branch. Zero means
// seed from the current time.
func (c *Config) GetSeed() uint64 {
	seed := c.config.GetUint64("SEED")
	if seed == 0 {
		seed = c.config.GetUint64("game.seed")
	}

	return seed
}

func (c *Config) GetAudioEnabled() bool {
	if c.config.IsSet("AUDIO_ENABLED") {
		return c.config.GetBool("AUDIO_ENABLED")
	}

	return c.config.GetBool("audio.enabled")
}

func (c *Config) GetSimRounds() int {
	return c.getInt("SIM_ROUNDS", "sim.rounds")
}

func (c *Config) GetSimReaction() time.Duration {
	return c.getMillis("SIM_REACTION_MS", "sim.reaction_ms")
}

func (c *Config) GetSimJitter() time.Duration {
	return c.getMillis("SIM_JITTER_MS", "sim.jitter_ms")
}

func (c *Config) GetSimMaxFrames() int {
	return c.getInt("SIM_MAX_FRAMES", "sim.max_frames")
}

func (c *Config) RotationParams() rotation.Params {
	return rotation.Params{
		RollDuration:   c.getMillis("ROLL_DURATION_MS", "game.roll_duration_ms"),
		PauseDuration:  c.getMillis("PAUSE_DURATION_MS", "game.pause_duration_ms"),
		BigRotDuration: c.getMillis("BIG_ROTATION_DURATION_MS", "game.big_rotation_duration_ms"),
		BigRotCooldown: c.getMillis("BIG_ROTATION_COOLDOWN_MS", "game.big_rotation_cooldown_ms"),
		RollAngle:      c.getFloat("ROLL_ANGLE_DEGREES", "game.roll_angle_degrees"),
		BigRotAngle:    c.getFloat("BIG_ROTATION_ANGLE_DEGREES", "game.big_rotation_angle_degrees"),
	}
}

func (c *Config) CaptureParams() capture.Params {
	return capture.Params{
		CaptureCooldown:        c.getMillis("CAPTURE_COOLDOWN_MS", "game.capture_cooldown_ms"),
		FailureMessageDuration: c.getMillis("FAILURE_MESSAGE_DURATION_MS", "game.failure_message_duration_ms"),
		Taunt:                  c.getString("TAUNT", "messages.taunt"),
		TauntSuffix:            c.getString("TAUNT_SUFFIX", "messages.taunt_suffix"),
	}
}

// getInt prefers the environment variable, when it is set, and falls back to
// the file key. An explicit zero in the environment is kept.
func (c *Config) getInt(envKey string, key string) int {
	if c.config.IsSet(envKey) {
		return c.config.GetInt(envKey)
	}

	return c.config.GetInt(key)
}

func (c *Config) getMillis(envKey string, key string) time.Duration {
	return time.Duration(c.getInt(envKey, key)) * time.Millisecond
}

func (c *Config) getFloat(envKey string, key string) float64 {
	if c.config.IsSet(envKey) {
		return c.config.GetFloat64(envKey)
	}

	return c.config.GetFloat64(key)
}

func (c *Config) getString(envKey string, key string) string {
	value := c.config.GetString(envKey)
	if len(value) == 0 {
		value = c.config.GetString(key)
	}

	return value
}

// loadDotEnv reads .env from the project root, if there is one. Variables
// already present in the environment are left alone.
func loadDotEnv() error {
	projectRoot, err := getProjectRoot()
	if err != nil {
		return nil
	}

	path := filepath.Join(projectRoot, dotEnvFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
