package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the file written by WriteDefault.
const DefaultFileName = "commitlint.toml"

// SearchPaths lists the configuration files Load looks for, in priority order,
// relative to the project root.
var SearchPaths = []string{
	"commitlint.toml",
	".commitlint.toml",
	filepath.Join(".cargo", "commitlint.toml"),
	".commitlint.yaml",
	".commitlint.yml",
}

// Loader implements domain.ConfigLoader for TOML and YAML files.
type Loader struct {
	log *logrus.Logger
}

// New creates a Loader. A nil logger gets a default one.
func New(log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{log: log}
}

// Load returns the first configuration found under projectPath, or
// DefaultConfig if there is none.
func (l *Loader) Load(projectPath string) (domain.Config, error) {
	for _, rel := range SearchPaths {
		path := filepath.Join(projectPath, rel)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.Config{}, err
		}
		if info.IsDir() {
			continue
		}
		return l.LoadFile(path)
	}
	l.log.Debugf("no configuration file under %s, using defaults", projectPath)
	return domain.DefaultConfig(), nil
}

// LoadFile decodes path, choosing the format by extension. Keys absent from
// the file keep their default value.
func (l *Loader) LoadFile(path string) (domain.Config, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("reading %s: %w", name, err)
	}

	cfg := domain.DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return domain.Config{}, fmt.Errorf("unsupported configuration format %q for %s", ext, name)
	}
	if err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	l.log.Debugf("loaded configuration from %s", path)
	return cfg, nil
}

// WriteDefault writes DefaultConfig as TOML to dir/commitlint.toml. An
// existing file is only replaced when force is set.
func (l *Loader) WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w", path, domain.ErrConfigExists)
	}

	data, err := EncodeTOML(domain.DefaultConfig())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	l.log.Debugf("wrote default configuration to %s", path)
	return path, nil
}

// EncodeTOML renders cfg in the commitlint.toml format.
func EncodeTOML(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# commitlint configuration\n\n")
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeTOML(data []byte, cfg *domain.Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *domain.Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
