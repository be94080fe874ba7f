package models

// Analysis is an optional downstream analysis result attached to a test or
// notification message. Like Alert it is an open map: a "setup" sub-map
// carries trade parameters, "indicators" carries named numeric signals, and
// "recommendation" carries free text. Nothing is validated; absent fields
// render as placeholders.
type Analysis map[string]interface{}

// Setup returns the trade setup sub-record, or nil when absent.
func (an Analysis) Setup() map[string]interface{} {
	if m, ok := an["setup"].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// Indicators returns the indicator sub-record, or nil when absent.
func (an Analysis) Indicators() map[string]interface{} {
	if m, ok := an["indicators"].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// Recommendation returns the free-text recommendation, or "" when absent.
func (an Analysis) Recommendation() string {
	if s, ok := an["recommendation"].(string); ok {
		return s
	}
	return ""
}
