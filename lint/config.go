package lint

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/safenum/internal/rules"
	"github.com/sirkon/safenum/policy"
)

// DefaultPackage is the import path of safe numerics.
const DefaultPackage = "github.com/sirkon/safenum"

// Config of the analyzer.
//
//	package: github.com/sirkon/safenum
//	strict: true
//	disabled: [SFN030]
//	exceptions:
//	  '"example.com/app/limits".Relaxed': loose_trap
//	  '"example.com/app/limits".Audit':
//	    arithmetic_error: trap
//	    implementation_defined_behavior: raise
//	    undefined_behavior: raise
//	    uninitialized_value: ignore
//	promotions:
//	  '"example.com/app/limits".Wide': widest
type Config struct {
	// Package is the import path of the safe numerics package. Its policy
	// subpackage is expected at Package + "/policy".
	Package string `yaml:"package"`

	// Strict makes policy expressions the analyzer cannot evaluate reportable.
	Strict bool `yaml:"strict"`

	// Disabled rules are not reported.
	Disabled []rules.Rule `yaml:"disabled"`

	// Exceptions and Promotions describe user defined policy variables.
	Exceptions map[Reference]*policy.Exception `yaml:"exceptions"`
	Promotions map[Reference]string            `yaml:"promotions"`
}

// DefaultConfig returns the config used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Package: DefaultPackage,
	}
}

// ParseConfig reads config from YAML.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Package == "" {
		return nil, errors.New("package path must not be empty")
	}
	for ref, e := range cfg.Exceptions {
		if e == nil {
			return nil, fmt.Errorf("exception policy %s has no value", ref)
		}
	}
	for ref, name := range cfg.Promotions {
		if _, ok := policy.Promotions[name]; !ok {
			return nil, fmt.Errorf("unknown promotion %q for %s", name, ref)
		}
	}

	return cfg, nil
}

// LoadConfig reads config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) policyPackage() string {
	return c.Package + "/policy"
}

// Reference points to a package level object.
type Reference struct {
	Package string
	Name    string
}

func (r Reference) String() string {
	return fmt.Sprintf("%q.%s", r.Package, r.Name)
}

var (
	_ encoding.TextUnmarshaler = (*Reference)(nil)
	_ encoding.TextMarshaler   = Reference{}
)

// UnmarshalText accepts "import/path".Name, the way the object is spelled
// in go/types output.
func (r *Reference) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	rest, ok := strings.CutPrefix(s, `"`)
	if !ok {
		return fmt.Errorf("reference %q: import path must be double quoted", s)
	}
	pkg, name, ok := strings.Cut(rest, `".`)
	switch {
	case !ok:
		return fmt.Errorf("reference %q: want \"path\".Name", s)
	case pkg == "":
		return fmt.Errorf("reference %q: empty import path", s)
	case !token.IsIdentifier(name):
		return fmt.Errorf("reference %q: %q is not an identifier", s, name)
	}

	r.Package, r.Name = pkg, name
	return nil
}

// MarshalText renders the reference back into "pkg/path".Name.
func (r Reference) MarshalText() ([]byte, error) {
	if r.Package == "" {
		return nil, errors.New("cannot marshal Reference: empty Package")
	}
	if r.Name == "" {
		return nil, errors.New("cannot marshal Reference: empty Name")
	}

	return []byte(`"` + r.Package + `".` + r.Name), nil
}
