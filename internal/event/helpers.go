package event

// Clone returns a copy of e whose ExtraData can be modified without touching e.
func (e *NormalizedEvent) Clone() *NormalizedEvent {
	c := *e
	if e.ExtraData != nil {
		c.ExtraData = make(map[string]any, len(e.ExtraData))
		for k, v := range e.ExtraData {
			c.ExtraData[k] = v
		}
	}
	return &c
}

// SetExtra stores v under key in ExtraData, creating the map on first use.
func (e *NormalizedEvent) SetExtra(key string, v any) {
	if e.ExtraData == nil {
		e.ExtraData = make(map[string]any)
	}
	e.ExtraData[key] = v
}

// Extra returns the ExtraData value for key as a string.
func (e *NormalizedEvent) Extra(key string) (string, bool) {
	return stringVal(e.ExtraData, key)
}

func stringVal(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
