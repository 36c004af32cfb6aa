package jar

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ysmood/gson"
)

type jsonCookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Secure   bool   `json:"secure"`
	HTTPOnly bool   `json:"httpOnly"`
	SameSite string `json:"sameSite,omitempty"`
	Expires  *int64 `json:"expires,omitempty"`
}

// MarshalJSON renders cookies as an indented JSON array.
func MarshalJSON(cookies []Cookie) ([]byte, error) {
	list := make([]jsonCookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			return nil, ErrEmptyName
		}
		jc := jsonCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: string(c.SameSite),
		}
		if c.Expires != nil {
			sec := c.Expires.Unix()
			jc.Expires = &sec
		}
		list = append(list, jc)
	}
	return json.MarshalIndent(list, "", "  ")
}

// UnmarshalJSON accepts either a bare array of cookies or an object with a
// "cookies" array. Expiry may be under "expires", "expiry" or
// "expirationDate", as seconds or an RFC 3339 string.
func UnmarshalJSON(raw []byte) ([]Cookie, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("jar: empty JSON cookie payload")
	}
	if !json.Valid(raw) {
		return nil, errors.New("jar: invalid JSON cookie payload")
	}

	var doc gson.JSON
	if err := doc.UnmarshalJSON(raw); err != nil {
		return nil, err
	}

	items := doc
	if doc.Has("cookies") {
		items = doc.Get("cookies")
	}
	if _, ok := items.Val().([]interface{}); !ok {
		return nil, errors.New("jar: JSON cookie payload is not an array")
	}

	var out []Cookie
	for i, item := range items.Arr() {
		name := str(item, "name")
		if name == "" {
			return nil, &SyntaxError{Line: i + 1, Err: ErrEmptyName}
		}
		out = append(out, Cookie{
			Name:     name,
			Value:    str(item, "value"),
			Domain:   str(item, "domain"),
			Path:     str(item, "path"),
			Secure:   item.Get("secure").Bool(),
			HTTPOnly: item.Get("httpOnly").Bool(),
			SameSite: normalizeSameSite(str(item, "sameSite")),
			Expires:  jsonExpiry(item),
		})
	}
	return out, nil
}

// str reads a string field, empty when the key is missing or not a string.
func str(item gson.JSON, key string) string {
	s, _ := item.Get(key).Val().(string)
	return s
}

func jsonExpiry(item gson.JSON) *time.Time {
	for _, key := range []string{"expires", "expiry", "expirationDate"} {
		if !item.Has(key) {
			continue
		}
		v := item.Get(key)
		if v.Nil() {
			return nil
		}
		if s, ok := v.Val().(string); ok {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
				t = t.UTC()
				return &t
			}
			return nil
		}
		sec := v.Num()
		if sec <= 0 {
			return nil
		}
		whole, frac := math.Modf(sec)
		t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return &t
	}
	return nil
}
