package marshaller

import "gopkg.in/yaml.v2"

// NewYaml creates a new instance of the YAML marshaller.
func NewYaml() Service {
	return Yaml{}
}

// Yaml implements the YAML marshaller.
type Yaml struct {
}

// Marshal converts the structure to the YAML configuration.
func (m Yaml) Marshal(data interface{}) ([]byte, error) {
	return yaml.Marshal(data)
}

// Unmarshal parses the YAML configuration to the target structure.
func (m Yaml) Unmarshal(data []byte, target interface{}) error {
	return yaml.Unmarshal(data, target)
}
