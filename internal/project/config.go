package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config — настройки проекта из pyfix.toml.
type Config struct {
	Style StyleConfig `toml:"style"`
	Fix   FixConfig   `toml:"fix"`
}

// StyleConfig задаёт целевой стиль исходников.
type StyleConfig struct {
	// MaxLineLength — предельная длина строки (по умолчанию 79, как E501).
	MaxLineLength int `toml:"max_line_length"`
	// IndentSize — ширина одного уровня продолженного отступа.
	IndentSize int `toml:"indent_size"`
	// HangClosing переносит строку сразу после открывающей скобки.
	HangClosing bool `toml:"hang_closing"`
}

// FixConfig ограничивает множество применяемых починок.
type FixConfig struct {
	// Select — коды, которые разрешено чинить ("E2", "E501", ...).
	// Пустой список означает "все поддерживаемые".
	Select []string `toml:"select"`
	// Ignore — коды, которые чинить нельзя; приоритетнее Select.
	Ignore []string `toml:"ignore"`
}

// Default returns the configuration used when no pyfix.toml is present.
func Default() Config {
	return Config{
		Style: StyleConfig{
			MaxLineLength: 79,
			IndentSize:    4,
		},
	}
}

// Manifest связывает конфиг с местом, откуда он прочитан.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Load parses pyfix.toml at path and fills in defaults for omitted keys.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := validate(path, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadManifest discovers pyfix.toml upward from startDir and loads it.
// ok=false означает, что манифеста нет и действуют значения по умолчанию.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindPyfixToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func validate(path string, cfg Config) error {
	if cfg.Style.MaxLineLength < 1 {
		return fmt.Errorf("%s: [style].max_line_length must be positive", path)
	}
	if cfg.Style.IndentSize < 1 {
		return fmt.Errorf("%s: [style].indent_size must be positive", path)
	}
	return nil
}

// Allowed reports whether fixes for code are enabled by Select/Ignore.
// Сравнение префиксное: "E2" покрывает E201, E225 и т.д.
func (c FixConfig) Allowed(code string) bool {
	for _, ig := range c.Ignore {
		if ig != "" && strings.HasPrefix(code, ig) {
			return false
		}
	}
	if len(c.Select) == 0 {
		return true
	}
	for _, sel := range c.Select {
		if sel != "" && strings.HasPrefix(code, sel) {
			return true
		}
	}
	return false
}
