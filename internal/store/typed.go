package store

import (
	"encoding/json"
	"strconv"
)

// GetString returns the value under key, or def when the key is absent.
func GetString(kv KV, key, def string) string {
	if v, ok := kv.Get(key); ok {
		return v
	}
	return def
}

// GetInt decodes an integer value. Absent or undecodable values yield def.
func GetInt(kv KV, key string, def int) int {
	v, ok := kv.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		reportDecode(kv, key, err)
		return def
	}
	return n
}

// GetInt64 decodes a 64-bit integer value, such as a Unix-millisecond stamp.
func GetInt64(kv KV, key string, def int64) int64 {
	v, ok := kv.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		reportDecode(kv, key, err)
		return def
	}
	return n
}

// GetFloat decodes a floating point value.
func GetFloat(kv KV, key string, def float64) float64 {
	v, ok := kv.Get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		reportDecode(kv, key, err)
		return def
	}
	return f
}

// GetJSON decodes a JSON value into out. It reports whether out was filled;
// on false, out is left untouched and the caller keeps its default.
func GetJSON(kv KV, key string, out any) bool {
	v, ok := kv.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		reportDecode(kv, key, err)
		return false
	}
	return true
}

// SetInt stores an integer value.
func SetInt(kv KV, key string, n int) {
	kv.Set(key, strconv.Itoa(n))
}

// SetInt64 stores a 64-bit integer value.
func SetInt64(kv KV, key string, n int64) {
	kv.Set(key, strconv.FormatInt(n, 10))
}

// SetFloat stores a floating point value in its shortest exact form.
func SetFloat(kv KV, key string, f float64) {
	kv.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
}

// SetJSON stores v encoded as JSON.
func SetJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	kv.Set(key, string(data))
	return nil
}

// SeedOnce stores value under key only when the key is absent. It reports
// whether the value was written.
func SeedOnce(kv KV, key, value string) bool {
	if _, ok := kv.Get(key); ok {
		return false
	}
	kv.Set(key, value)
	return true
}

func reportDecode(kv KV, key string, err error) {
	if r, ok := kv.(decodeReporter); ok {
		r.ReportDecodeFailure(key, err)
	}
}
