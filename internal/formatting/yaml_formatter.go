package formatting

import "gopkg.in/yaml.v3"

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct{}

func (YAMLFormatter) FormatToken(token TokenView) (string, error) {
	return marshalYAML(token)
}

func (YAMLFormatter) FormatProviders(providers []ProviderView) (string, error) {
	if providers == nil {
		providers = []ProviderView{}
	}
	return marshalYAML(providers)
}

func marshalYAML(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
