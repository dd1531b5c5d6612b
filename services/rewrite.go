package services

import (
	"encoding/json"
	"regexp"
	"strconv"

	"gorm.io/datatypes"
)

// Field names whose numeric values are treated as media references inside
// opaque documents. The store enforces no foreign keys inside jsonb, so these
// are recognized structurally.
var mediaRefFields = map[string]bool{
	"mediaId":         true,
	"media_id":        true,
	"imageId":         true,
	"image_id":        true,
	"featuredImageId": true,
}

var numberToken = regexp.MustCompile(`\b\d+\b`)

// RewriteMediaRefs walks an opaque document (layout, props, content) and
// rewrites embedded media identifiers through the remap table. Recognized
// reference fields with a numeric value are mapped directly; every other
// object and array node is walked recursively. String leaves get a
// last-resort pass that substitutes old ids appearing as whole number
// tokens, because some historical documents interpolate ids into plain
// strings. That token pass can in principle collide with unrelated numbers
// that happen to equal an old id; field-name rewriting runs first so
// structured references never depend on it.
//
// Ids with no mapping are left untouched. The input is not modified.
func RewriteMediaRefs(doc datatypes.JSON, remap map[uint]uint) (datatypes.JSON, error) {
	if len(doc) == 0 || len(remap) == 0 {
		return doc, nil
	}

	var node any
	if err := json.Unmarshal(doc, &node); err != nil {
		return doc, err
	}

	rewritten := rewriteNode(node, remap)

	out, err := json.Marshal(rewritten)
	if err != nil {
		return doc, err
	}
	return datatypes.JSON(out), nil
}

func rewriteNode(node any, remap map[uint]uint) any {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			if mediaRefFields[key] {
				if mapped, ok := rewriteNumericRef(child, remap); ok {
					v[key] = mapped
					continue
				}
			}
			v[key] = rewriteNode(child, remap)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = rewriteNode(child, remap)
		}
		return v
	case string:
		return rewriteNumberTokens(v, remap)
	default:
		return node
	}
}

// rewriteNumericRef maps a reference field's value through the remap table.
// JSON numbers arrive as float64; only non-negative whole values are
// candidate ids. Returns ok=false when the value is not numeric, so the
// caller falls back to the generic walk.
func rewriteNumericRef(value any, remap map[uint]uint) (any, bool) {
	num, isNumber := value.(float64)
	if !isNumber {
		return nil, false
	}
	if num < 0 || num != float64(uint(num)) {
		return value, true
	}
	if mapped, ok := remap[uint(num)]; ok {
		return float64(mapped), true
	}
	return value, true
}

// rewriteNumberTokens substitutes remapped ids appearing in a string as
// standalone digit runs ("url": "/files/img-42.png" with 42 remapped to 7
// becomes "/files/img-7.png"). Tokens embedded in a larger word are left
// alone.
func rewriteNumberTokens(s string, remap map[uint]uint) string {
	return numberToken.ReplaceAllStringFunc(s, func(token string) string {
		oldID, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return token
		}
		if newID, ok := remap[uint(oldID)]; ok {
			return strconv.FormatUint(uint64(newID), 10)
		}
		return token
	})
}
