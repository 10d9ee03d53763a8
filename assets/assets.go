// Package assets holds the encoded audio bundled into the binary.
package assets

import (
	"embed"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed music/bgm.wav sfx/*.wav
var files embed.FS

// Bank maps effect names to encoded payloads. It is read-only once built.
type Bank struct {
	music   []byte
	effects map[string][]byte
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the bank of embedded assets.
func Default() *Bank {
	defaultOnce.Do(func() {
		music, err := files.ReadFile("music/bgm.wav")
		if err != nil {
			panic("assets: missing embedded music: " + err.Error())
		}

		entries, err := files.ReadDir("sfx")
		if err != nil {
			panic("assets: missing embedded effects: " + err.Error())
		}

		effects := make(map[string][]byte, len(entries))
		for _, e := range entries {
			data, err := files.ReadFile(path.Join("sfx", e.Name()))
			if err != nil {
				panic("assets: " + err.Error())
			}
			effects[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = data
		}

		defaultBank = New(music, effects)
	})
	return defaultBank
}

// New builds a bank from arbitrary payloads.
func New(music []byte, effects map[string][]byte) *Bank {
	b := &Bank{music: music, effects: make(map[string][]byte, len(effects))}
	for name, data := range effects {
		b.effects[name] = data
	}
	return b
}

// Effect returns the payload registered under name. The second result is
// false for names the bank does not know.
func (b *Bank) Effect(name string) ([]byte, bool) {
	data, ok := b.effects[name]
	return data, ok
}

// Music returns the looping background track.
func (b *Bank) Music() []byte {
	return b.music
}

// Names returns the effect names in sorted order.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.effects))
	for name := range b.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
