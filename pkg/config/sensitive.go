package config

import "encoding/json"

// redactedPlaceholder replaces sensitive values in logs and serialized output.
const redactedPlaceholder = "[REDACTED]"

// SensitiveString is a string that redacts itself when printed or marshaled.
// Use Value() to read the actual content at the point it is consumed.
type SensitiveString string

// String implements fmt.Stringer and always redacts non-empty values.
func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

// MarshalJSON serializes the redacted form, never the secret itself.
func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML serializes the redacted form for YAML encoders.
func (s SensitiveString) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalJSON accepts a plain JSON string.
func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SensitiveString(raw)
	return nil
}
