package formatting

import "encoding/json"

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct{}

func (JSONFormatter) FormatToken(token TokenView) (string, error) {
	return marshalJSON(token)
}

func (JSONFormatter) FormatProviders(providers []ProviderView) (string, error) {
	if providers == nil {
		providers = []ProviderView{}
	}
	return marshalJSON(providers)
}

func marshalJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
