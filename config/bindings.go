package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/ini.v1"

	"github.com/automoto/doomerang-brawl/shared/simconfig"
)

const generalSection = "General"

var bindingOrder = []simconfig.Intent{
	simconfig.IntentLeft,
	simconfig.IntentRight,
	simconfig.IntentJump,
	simconfig.IntentCrouch,
	simconfig.IntentPunch,
	simconfig.IntentKick,
	simconfig.IntentBlock,
	simconfig.IntentRun,
}

var keysByName = map[string]ebiten.Key{}

func init() {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		keysByName[strings.ToLower(k.String())] = k
	}
}

// ParseKey looks up an ebiten key by its name, ignoring case.
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// ParseBindings overlays an ini document on base:
//
//	[General]
//	TwoPlayers = true
//
//	[Slot0]
//	Left = ArrowLeft
//	Run  = ControlLeft, ControlRight
//
// An intent listed in a slot replaces all of that intent's keys; intents not
// listed keep their keys from base, and an empty value unbinds an intent.
func ParseBindings(base InputConfig, data []byte) (InputConfig, error) {
	out := InputConfig{TwoPlayers: base.TwoPlayers}
	for i, b := range base.Slots {
		out.Slots[i] = b.Clone()
	}

	f, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return base, fmt.Errorf("config: bindings: %w", err)
	}

	for _, section := range f.Sections() {
		name := section.Name()
		switch {
		case name == ini.DEFAULT_SECTION:
			continue
		case name == generalSection:
			if section.HasKey("TwoPlayers") {
				tp, err := section.Key("TwoPlayers").Bool()
				if err != nil {
					return base, fmt.Errorf("config: bindings: TwoPlayers: %w", err)
				}
				out.TwoPlayers = tp
			}
			continue
		}

		slot, err := parseSlot(name)
		if err != nil {
			return base, err
		}
		for _, key := range section.Keys() {
			intent, ok := simconfig.ParseIntent(key.Name())
			if !ok {
				return base, fmt.Errorf("config: bindings: [%s] unknown intent %q", name, key.Name())
			}
			var keys []ebiten.Key
			for _, kn := range key.Strings(",") {
				k, ok := ParseKey(kn)
				if !ok {
					return base, fmt.Errorf("config: bindings: [%s] %s: unknown key %q", name, key.Name(), kn)
				}
				keys = append(keys, k)
			}
			out.Slots[slot][intent] = keys
		}
	}
	return out, nil
}

func parseSlot(section string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(section, "Slot"))
	if !strings.HasPrefix(section, "Slot") || err != nil || n < 0 || n >= Slots {
		return 0, fmt.Errorf("config: bindings: unknown section [%s]", section)
	}
	return n, nil
}

// FormatBindings writes in as an ini document ParseBindings reads back.
func FormatBindings(in InputConfig) ([]byte, error) {
	f := ini.Empty()
	general, err := f.NewSection(generalSection)
	if err != nil {
		return nil, err
	}
	if _, err := general.NewKey("TwoPlayers", strconv.FormatBool(in.TwoPlayers)); err != nil {
		return nil, err
	}

	for i, b := range in.Slots {
		section, err := f.NewSection(fmt.Sprintf("Slot%d", i))
		if err != nil {
			return nil, err
		}
		for _, intent := range bindingOrder {
			keys, ok := b[intent]
			if !ok {
				continue
			}
			names := make([]string, len(keys))
			for j, k := range keys {
				names[j] = k.String()
			}
			if _, err := section.NewKey(intent.String(), strings.Join(names, ", ")); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadBindingsFile overlays the ini file at path on Input.
func LoadBindingsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	in, err := ParseBindings(Input, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Input = in
	return nil
}
