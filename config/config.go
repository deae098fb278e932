package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/lai323/lexis/flashcard"
	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

type Config struct {
	StoragePath string `yaml:"StoragePath"`
	// LessonsFile replaces the built-in lessons. Empty means built-in.
	LessonsFile string `yaml:"LessonsFile"`
	QuizMode    string `yaml:"QuizMode"`

	// SpeechEngine is one of espeak, remote or none.
	SpeechEngine     string   `yaml:"SpeechEngine"`
	SpeechLang       string   `yaml:"SpeechLang"`
	Volume           float64  `yaml:"Volume"`
	Priming          bool     `yaml:"Priming"`
	KeepAliveSeconds int      `yaml:"KeepAliveSeconds"`
	EspeakPath       string   `yaml:"EspeakPath"`
	TTSURL           string   `yaml:"TTSURL"`
	FfplayPath       string   `yaml:"FfplayPath"`
	FfplayArgs       []string `yaml:"FfplayArgs"`

	LogFile  string `yaml:"LogFile"`
	LogLevel string `yaml:"LogLevel"`
}

var (
	DefaultConfig     Config
	DefaultConfigDir  string
	DefaultConfigPath string
	DefaultStorageDir string
	DefaultCacheDir   string
)

func init() {
	var err error
	DefaultConfigPath, err = xdg.ConfigFile("lexis/lexis.yaml")
	if err != nil {
		log.Fatal(err)
	}
	DefaultConfigDir = path.Dir(DefaultConfigPath)
	DefaultStorageDir = path.Join(xdg.DataHome, "lexis")
	DefaultCacheDir = path.Join(xdg.CacheHome, "lexis")
	DefaultConfig = Config{
		StoragePath:      DefaultStorageDir,
		QuizMode:         flashcard.ModeGreekRussian.String(),
		SpeechEngine:     "espeak",
		SpeechLang:       "el-GR",
		Volume:           1,
		KeepAliveSeconds: 20,
		EspeakPath:       "espeak-ng",
		FfplayPath:       "ffplay",
		FfplayArgs:       []string{"-nodisp", "-autoexit", "-loglevel", "quiet"},
		LogFile:          path.Join(DefaultStorageDir, "lexis.log"),
		LogLevel:         "info",
	}
}

type initConfigErr struct {
	s string
}

func (e *initConfigErr) Error() string {
	return e.s
}

func newInitConfigErr(err error) error {
	return &initConfigErr{
		s: fmt.Sprintf("Init config error: %s", err.Error()),
	}
}

// CreateDefaultFile writes DefaultConfig to the default path on first run.
func CreateDefaultFile(fs afero.Fs) error {
	err := fs.MkdirAll(DefaultConfigDir, 0755)
	if err != nil {
		return err
	}
	err = fs.MkdirAll(DefaultStorageDir, 0755)
	if err != nil {
		return err
	}

	exist, err := afero.Exists(fs, DefaultConfigPath)
	if err != nil {
		return err
	}

	if !exist {
		handle, err := fs.Create(DefaultConfigPath)
		if err != nil {
			return err
		}
		defer handle.Close()
		err = yaml.NewEncoder(handle).Encode(&DefaultConfig)
		if err != nil {
			return err
		}
	}
	return nil
}

// InitConfig reads the config file over the defaults, applies environment
// overrides and validates the result. An empty configPathOption means the
// default file, which is created if missing.
func InitConfig(fs afero.Fs, configPathOption string) (Config, error) {
	config := DefaultConfig
	config.FfplayArgs = append([]string(nil), DefaultConfig.FfplayArgs...)
	var configfile string

	if configPathOption == "" {
		if err := CreateDefaultFile(fs); err != nil {
			return config, newInitConfigErr(err)
		}
		configfile = DefaultConfigPath
	} else {
		exist, err := afero.Exists(fs, configPathOption)
		if err != nil {
			return config, newInitConfigErr(err)
		}
		if !exist {
			return config, &initConfigErr{
				s: fmt.Sprintf("Init config error: %s not exist", configPathOption),
			}
		}
		configfile = configPathOption
	}

	handle, err := fs.Open(configfile)
	if err != nil {
		return config, newInitConfigErr(err)
	}
	defer handle.Close()
	err = yaml.NewDecoder(handle).Decode(&config)
	if err != nil {
		return config, newInitConfigErr(err)
	}

	LoadEnv()
	if err := ApplyEnv(&config, os.LookupEnv); err != nil {
		return config, newInitConfigErr(err)
	}
	if err := config.Validate(); err != nil {
		return config, newInitConfigErr(err)
	}
	return config, nil
}

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides config fields from LEXIS_* variables.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("LEXIS_STORAGE_PATH", &c.StoragePath)
	str("LEXIS_LESSONS_FILE", &c.LessonsFile)
	str("LEXIS_QUIZ_MODE", &c.QuizMode)
	str("LEXIS_SPEECH_ENGINE", &c.SpeechEngine)
	str("LEXIS_SPEECH_LANG", &c.SpeechLang)
	str("LEXIS_ESPEAK_PATH", &c.EspeakPath)
	str("LEXIS_TTS_URL", &c.TTSURL)
	str("LEXIS_FFPLAY_PATH", &c.FfplayPath)
	str("LEXIS_LOG_FILE", &c.LogFile)
	str("LEXIS_LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("LEXIS_FFPLAY_ARGS"); ok && v != "" {
		c.FfplayArgs = strings.Fields(v)
	}
	if v, ok := lookup("LEXIS_VOLUME"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LEXIS_VOLUME=%q: %w", v, err)
		}
		c.Volume = f
	}
	if v, ok := lookup("LEXIS_PRIMING"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEXIS_PRIMING=%q: %w", v, err)
		}
		c.Priming = b
	}
	if v, ok := lookup("LEXIS_KEEPALIVE_SECONDS"); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEXIS_KEEPALIVE_SECONDS=%q: %w", v, err)
		}
		c.KeepAliveSeconds = i
	}
	return nil
}

func (c Config) Validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("StoragePath empty")
	}
	if _, err := flashcard.ParseMode(c.QuizMode); err != nil {
		return fmt.Errorf("QuizMode: %w", err)
	}
	switch c.SpeechEngine {
	case "espeak", "remote", "none":
	default:
		return fmt.Errorf("SpeechEngine %q: want espeak, remote or none", c.SpeechEngine)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("Volume %v out of range [0, 1]", c.Volume)
	}
	if c.KeepAliveSeconds < 0 {
		return fmt.Errorf("KeepAliveSeconds %d is negative", c.KeepAliveSeconds)
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LogLevel: %w", err)
		}
	}
	return nil
}

// SetsDir holds imported lesson sets.
func (c Config) SetsDir() string {
	return path.Join(c.StoragePath, "sets")
}

// ClipCacheDir holds downloaded speech clips.
func (c Config) ClipCacheDir() string {
	return path.Join(DefaultCacheDir, "clips")
}
