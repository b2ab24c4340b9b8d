package parse

import "regexp"

var (
	sdElementRegex = regexp.MustCompile(`\[[^\]]*\]`)
	sdIDRegex      = regexp.MustCompile(`^(\S+?)@\S+`)
	sdParamRegex   = regexp.MustCompile(`([^\s="]+)="([\w ]*)"`)
)

// mainKeys are SD parameters that describe the event itself rather than
// carrying opaque payload.
var mainKeys = map[string]bool{
	"env":  true,
	"type": true,
}

// StructuredData is a decomposed STRUCTURED-DATA field.
type StructuredData struct {
	// Elements maps the SD-ID name (text before '@') to its parameters.
	Elements map[string]map[string]string
	// Order lists Elements keys in first-seen order.
	Order []string
	// Main holds the recognized main fields; the last element defining one wins.
	Main map[string]string
}

// ParseStructuredData splits a bracketed SD run such as
// `[exampleSDID@32473 env="prod" iut="3"][other@1 x="1"]` into its elements.
// Elements without an SD-ID or without any valid parameter are skipped.
func ParseStructuredData(sd string) StructuredData {
	out := StructuredData{
		Elements: make(map[string]map[string]string),
		Main:     make(map[string]string),
	}

	for _, span := range sdElementRegex.FindAllString(sd, -1) {
		body := span[1 : len(span)-1]

		id := sdIDRegex.FindStringSubmatchIndex(body)
		if id == nil {
			continue
		}
		key := body[id[2]:id[3]]
		pairs := sdParamRegex.FindAllStringSubmatch(body[id[1]:], -1)
		if len(pairs) == 0 {
			continue
		}

		params := make(map[string]string, len(pairs))
		for _, p := range pairs {
			if mainKeys[p[1]] {
				out.Main[p[1]] = p[2]
				continue
			}
			params[p[1]] = p[2]
		}
		if len(params) == 0 {
			continue
		}

		if _, seen := out.Elements[key]; !seen {
			out.Order = append(out.Order, key)
		}
		out.Elements[key] = params
	}

	return out
}

// Params flattens the element parameters in first-seen element order.
// A key defined by several elements takes the value of the later one.
func (sd StructuredData) Params() map[string]any {
	if len(sd.Elements) == 0 {
		return nil
	}
	out := make(map[string]any)
	for _, key := range sd.Order {
		for k, v := range sd.Elements[key] {
			out[k] = v
		}
	}
	return out
}
