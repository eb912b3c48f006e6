package domain

// Submission is the untrusted payload a client sends on create/update. Every
// sub-record is optional and every field inside may be absent, wrongly typed,
// or out of range; the normalizer treats all three the same way. Reading a
// missing key from a nil map yields nil, so callers never need nil checks on
// the sub-records themselves.
type Submission struct {
	General        map[string]any `json:"general"`
	Address        map[string]any `json:"address"`
	OnlinePresence map[string]any `json:"onlinePresence"`
	Medias         map[string]any `json:"medias"`
	Operations     map[string]any `json:"operations"`
	SEO            map[string]any `json:"seo"`
}

// SubMap returns the nested object at key, or nil when absent or not an object.
func SubMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// SubSlice returns the nested list at key, or nil when absent or not a list.
func SubSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}
