package econfig

import (
	"fmt"
	goplugin "plugin"
)

// ModuleLoader "requires" a resolved module file and returns the value it
// exports (spec.md §4.F "require the resolved file"). The core never
// executes a loaded parser itself, so a parser's Definition stays opaque;
// a plugin's Definition must be a *PluginModule.
type ModuleLoader interface {
	LoadParser(absolutePath string) (interface{}, error)
	LoadPlugin(absolutePath string) (*PluginModule, error)
}

// GoPluginModuleLoader is the default ModuleLoader, backed by the standard
// library's plugin package — the only mechanism this ecosystem offers for
// loading code from an on-disk path at runtime, so this leaf is stdlib by
// necessity rather than by omission (see DESIGN.md). A module built with
// `go build -buildmode=plugin` is expected to export a `Parser` or `Plugin`
// symbol.
type GoPluginModuleLoader struct{}

// LoadParser opens the plugin file and returns its exported Parser symbol
// as-is.
func (GoPluginModuleLoader) LoadParser(absolutePath string) (interface{}, error) {
	p, err := goplugin.Open(absolutePath)
	if err != nil {
		return nil, fmt.Errorf("loading parser module %s: %w", absolutePath, err)
	}
	sym, err := p.Lookup("Parser")
	if err != nil {
		return nil, fmt.Errorf("parser module %s does not export Parser: %w", absolutePath, err)
	}
	return sym, nil
}

// LoadPlugin opens the plugin file and returns its exported Plugin symbol,
// which must be a *PluginModule.
func (GoPluginModuleLoader) LoadPlugin(absolutePath string) (*PluginModule, error) {
	p, err := goplugin.Open(absolutePath)
	if err != nil {
		return nil, fmt.Errorf("loading plugin module %s: %w", absolutePath, err)
	}
	sym, err := p.Lookup("Plugin")
	if err != nil {
		return nil, fmt.Errorf("plugin module %s does not export Plugin: %w", absolutePath, err)
	}
	mod, ok := sym.(*PluginModule)
	if !ok {
		return nil, fmt.Errorf("plugin module %s exported Plugin is not a *econfig.PluginModule", absolutePath)
	}
	return mod, nil
}
