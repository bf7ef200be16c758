package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/kbukum/breedkit/errors"
)

// EnvPrefix is prepended to environment variables that override parameters.
const EnvPrefix = "BREED"

// Parameters is a read-mostly hierarchical key/value store.
type Parameters struct {
	v *viper.Viper
}

// NewParameters returns an empty parameter set that still honours
// BREED_ environment overrides.
func NewParameters() *Parameters {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Parameters{v: v}
}

// Set stores a value under key. Intended for programmatic assembly and tests.
func (p *Parameters) Set(key Path, value any) {
	p.v.Set(string(key), value)
}

// SetAll stores every entry of values.
func (p *Parameters) SetAll(values map[string]any) {
	for k, val := range values {
		p.v.Set(k, val)
	}
}

// Exists reports whether key or def has a value.
func (p *Parameters) Exists(key, def Path) bool {
	_, ok := p.resolve(key, def)
	return ok
}

// Which returns the path that actually holds the value, or "" if neither does.
func (p *Parameters) Which(key, def Path) Path {
	k, _ := p.resolve(key, def)
	return k
}

// String returns the string under key or def, and whether one was found.
func (p *Parameters) String(key, def Path) (string, bool) {
	k, ok := p.resolve(key, def)
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(p.v.Get(string(k)))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Int returns the integer under key or def, or fallback if neither is set.
func (p *Parameters) Int(key, def Path, fallback int) (int, error) {
	k, ok := p.resolve(key, def)
	if !ok {
		return fallback, nil
	}
	n, err := cast.ToIntE(p.v.Get(string(k)))
	if err != nil {
		return 0, errors.InvalidParameter(string(k), fmt.Sprintf("not an integer: %v", p.v.Get(string(k)))).WithCause(err)
	}
	return n, nil
}

// RequireInt is Int without a fallback: a missing value is an error.
func (p *Parameters) RequireInt(key, def Path) (int, error) {
	if !p.Exists(key, def) {
		return 0, errors.MissingParameter(string(key), string(def))
	}
	return p.Int(key, def, 0)
}

// Uint64 returns the unsigned integer under key or def, or fallback if neither is set.
func (p *Parameters) Uint64(key, def Path, fallback uint64) (uint64, error) {
	k, ok := p.resolve(key, def)
	if !ok {
		return fallback, nil
	}
	n, err := cast.ToUint64E(p.v.Get(string(k)))
	if err != nil {
		return 0, errors.InvalidParameter(string(k), fmt.Sprintf("not an unsigned integer: %v", p.v.Get(string(k)))).WithCause(err)
	}
	return n, nil
}

// Float returns the float under key or def, or fallback if neither is set.
func (p *Parameters) Float(key, def Path, fallback float64) (float64, error) {
	k, ok := p.resolve(key, def)
	if !ok {
		return fallback, nil
	}
	f, err := cast.ToFloat64E(p.v.Get(string(k)))
	if err != nil {
		return 0, errors.InvalidParameter(string(k), fmt.Sprintf("not a number: %v", p.v.Get(string(k)))).WithCause(err)
	}
	return f, nil
}

// Bool returns the boolean under key or def, or fallback if neither is set.
func (p *Parameters) Bool(key, def Path, fallback bool) (bool, error) {
	k, ok := p.resolve(key, def)
	if !ok {
		return fallback, nil
	}
	b, err := cast.ToBoolE(p.v.Get(string(k)))
	if err != nil {
		return false, errors.InvalidParameter(string(k), fmt.Sprintf("not a boolean: %v", p.v.Get(string(k)))).WithCause(err)
	}
	return b, nil
}

// Keys returns every key currently known, sorted by viper.
func (p *Parameters) Keys() []string {
	return p.v.AllKeys()
}

func (p *Parameters) resolve(key, def Path) (Path, bool) {
	if key != "" && p.v.IsSet(string(key)) {
		return key, true
	}
	if def != "" && p.v.IsSet(string(def)) {
		return def, true
	}
	return "", false
}
