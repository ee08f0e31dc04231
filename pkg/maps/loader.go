package maps

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultMoatFrequency is the moat spacing used by the plain "moat" layout.
const DefaultMoatFrequency = 3

// Built-in layouts.
var (
	Dry = GeneratorFunc{
		Name:  "dry",
		Water: func(int, int, int) bool { return false },
	}

	// Wet floods every third cell of the odd tunnels.
	Wet = GeneratorFunc{
		Name:  "wet",
		Water: func(t, p, _ int) bool { return t%2 == 1 && p%3 == 2 },
	}

	// Narrow floods the middle cell of every tunnel.
	Narrow = GeneratorFunc{
		Name:  "narrow",
		Water: func(_, p, length int) bool { return p == length/2 },
	}
)

// Moat floods every freq-th position of every tunnel, counting from 1 at
// the queen's end. A frequency below 1 gives a dry layout.
func Moat(freq int) GeneratorFunc {
	return GeneratorFunc{
		Name: "moat:" + strconv.Itoa(freq),
		Water: func(_, p, _ int) bool {
			return freq > 0 && (p+1)%freq == 0
		},
	}
}

var registry = map[string]func(seed int64) Generator{
	"dry":    func(int64) Generator { return Dry },
	"wet":    func(int64) Generator { return Wet },
	"narrow": func(int64) Generator { return Narrow },
	"moat":   func(int64) Generator { return Moat(DefaultMoatFrequency) },
	"noise": func(seed int64) Generator {
		opts := DefaultNoiseOptions()
		opts.Seed = seed
		return NewNoiseGenerator(opts)
	},
}

// ByName returns the named generator. Seed only matters for "noise".
// "moat:N" picks a moat layout with frequency N.
func ByName(name string, seed int64) (Generator, error) {
	if base, arg, ok := strings.Cut(name, ":"); ok && base == "moat" {
		freq, err := strconv.Atoi(arg)
		if err != nil || freq < 1 {
			return nil, fmt.Errorf("bad moat frequency %q", arg)
		}
		return Moat(freq), nil
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q (have %v)", name, Names())
	}
	return mk(seed), nil
}

// Names lists the registered layouts.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
