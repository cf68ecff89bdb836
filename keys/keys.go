package keys

import (
	"maps"
	"slices"
	"strings"

	"json-modal/config"
	"json-modal/log"

	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	KeyOpen   // Opens the JSON modal from the page
	KeyCopy   // Copies the JSON to the clipboard while the modal is open
	KeyClose  // Closes the modal or any other overlay
	KeyReload // Re-reads the input file and renders again
	KeyHelp
	KeyLog
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
	"home":      KeyHome,
	"g":         KeyHome,
	"ctrl+home": KeyHome,
	"end":       KeyEnd,
	"G":         KeyEnd,
	"ctrl+end":  KeyEnd,
	"enter":     KeyOpen,
	"o":         KeyOpen,
	"c":         KeyCopy,
	"y":         KeyCopy,
	"esc":       KeyClose,
	"x":         KeyClose,
	"r":         KeyReload,
	"?":         KeyHelp,
	"l":         KeyLog,
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
}

// GlobalkeyBindings is a global map of KeyName to keybinding. Custom bindings from the
// config directory replace entries at startup.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	KeyHome: key.NewBinding(
		key.WithKeys("home", "g", "ctrl+home"),
		key.WithHelp("home/g", "top"),
	),
	KeyEnd: key.NewBinding(
		key.WithKeys("end", "G", "ctrl+end"),
		key.WithHelp("end/G", "bottom"),
	),
	KeyOpen: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("↵/o", "show JSON"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c/y", "copy"),
	),
	KeyClose: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("esc/x", "close"),
	),
	KeyReload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyLog: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "event log"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// commandToKeyName maps the command names used in keybindings.json to KeyNames.
var commandToKeyName = map[string]KeyName{
	"up":        KeyUp,
	"down":      KeyDown,
	"page_up":   KeyPageUp,
	"page_down": KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"open":      KeyOpen,
	"copy":      KeyCopy,
	"close":     KeyClose,
	"reload":    KeyReload,
	"help":      KeyHelp,
	"log":       KeyLog,
	"quit":      KeyQuit,
}

// CustomKeyStringsMap is a mutable map that can be updated with custom keybindings
var CustomKeyStringsMap map[string]KeyName

// overridden holds the KeyNames whose default keys are replaced by custom bindings.
var overridden map[KeyName]bool

// InitializeCustomKeyBindings loads custom keybindings from config. Keys bound to more
// than one command are logged; the last binding in the file wins.
func InitializeCustomKeyBindings() error {
	kbConfig, err := config.LoadKeyBindings()
	if err != nil {
		return err
	}
	conflicts := kbConfig.ValidateBindings()
	for _, k := range slices.Sorted(maps.Keys(conflicts)) {
		log.WarningLog.Printf("key %q is bound to several commands: %s", k, strings.Join(conflicts[k], ", "))
	}
	ApplyKeyBindings(kbConfig)
	return nil
}

// ApplyKeyBindings installs kbConfig on top of the default bindings. Unknown commands
// are ignored.
func ApplyKeyBindings(kbConfig *config.KeyBindingsConfig) {
	custom := make(map[string]KeyName)
	replaced := make(map[KeyName]bool)
	for _, binding := range kbConfig.Bindings {
		keyName, ok := commandToKeyName[binding.Command]
		if !ok || len(binding.Keys) == 0 {
			continue
		}
		for _, k := range binding.Keys {
			custom[k] = keyName
		}
		replaced[keyName] = true

		help := GlobalkeyBindings[keyName].Help().Desc
		GlobalkeyBindings[keyName] = key.NewBinding(
			key.WithKeys(binding.Keys...),
			key.WithHelp(binding.Help, help),
		)
	}
	CustomKeyStringsMap = custom
	overridden = replaced
}

// GetKeyName returns the KeyName for a given key string, checking custom bindings first
func GetKeyName(keyStr string) (KeyName, bool) {
	if CustomKeyStringsMap != nil {
		if keyName, ok := CustomKeyStringsMap[keyStr]; ok {
			return keyName, true
		}
	}

	keyName, ok := GlobalKeyStringsMap[keyStr]
	if ok && overridden[keyName] {
		// The command was rebound; its default keys no longer trigger it.
		return keyName, false
	}
	return keyName, ok
}
