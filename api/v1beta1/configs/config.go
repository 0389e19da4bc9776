// Package configs provides the Configuration kind, which defines the
// shellmenu menu.
package configs

import (
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/senenv/shellmenu/api"
	"github.com/senenv/shellmenu/api/v1beta1"
	"github.com/senenv/shellmenu/pkg/command"
	"github.com/senenv/shellmenu/pkg/ui/picker"
	"github.com/senenv/shellmenu/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -o configs.v1beta1.json

// Kind is the kind of a menu configuration.
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for menu configurations.
	ValidKinds = []string{Kind}

	// DefaultValidator validates menu configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	_ v1beta1.Object = (*Config)(nil)
)

// Config is a versioned menu configuration file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Menu *command.Config `json:",inline"`
	// KeyBinds configures the keys of the interactive picker.
	KeyBinds         *picker.KeyBinds `json:"keyBinds,omitempty" jsonschema:"title=Key Binds"`
	v1beta1.TypeMeta `json:",inline"`
}

// New creates a [Config] with the default menu.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills a missing menu and missing key binds with the defaults.
func (c *Config) EnsureDefaults() {
	if c.Menu == nil {
		c.Menu = &command.Config{}
	}

	c.Menu.EnsureDefaults()

	if c.KeyBinds == nil {
		c.KeyBinds = &picker.KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// Validate checks the type metadata and compiles the menu.
func (c *Config) Validate() error {
	err := c.Check(ValidKinds...)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	if c.Menu != nil {
		err = c.Menu.Validate()
		if err != nil {
			return fmt.Errorf("validate menu: %w", err)
		}
	}

	if c.KeyBinds != nil {
		err = c.KeyBinds.Validate()
		if err != nil {
			return fmt.Errorf("validate key binds: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// WriteDefault writes the embedded default config.yaml to path. With force, an
// existing file is backed up and replaced.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// DefaultYAML returns the embedded default config.yaml.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// GetPath returns the path to the menu configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
