package cache

import "fmt"

// GenerateKeyWithParams builds a colon-separated cache key, e.g.
// GenerateKeyWithParams("weather:current", 10.55, 78.21).
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
