package econfig

import "strings"

// normalizePackageName applies spec.md §6's name-normalization rule:
// package names are normalized to "eslint-config-<name>" or
// "eslint-plugin-<name>" with scope preservation. The reverse direction
// (stripping the prefix to get a shorthand name) is shortPluginName.
func normalizePackageName(name, prefix string) string {
	if strings.HasPrefix(name, "@") {
		parts := strings.SplitN(name[1:], "/", 2)
		scope := "@" + parts[0]
		if len(parts) == 1 || parts[1] == "" {
			return scope + "/" + prefix
		}
		rest := parts[1]
		if strings.HasPrefix(rest, prefix+"-") {
			return scope + "/" + rest
		}
		return scope + "/" + prefix + "-" + rest
	}

	if strings.HasPrefix(name, prefix+"-") {
		return name
	}
	return prefix + "-" + name
}

// normalizeConfigName normalizes a shareable-config specifier, e.g.
// "foo" -> "eslint-config-foo", "@scope/foo" -> "@scope/eslint-config-foo".
func normalizeConfigName(name string) string {
	return normalizePackageName(name, "eslint-config")
}

// normalizePluginName normalizes a plugin specifier the same way, e.g.
// "foo" -> "eslint-plugin-foo".
func normalizePluginName(name string) string {
	return normalizePackageName(name, "eslint-plugin")
}

// shortPluginName strips the "eslint-plugin-" prefix (including in scoped
// paths), used to key Plugins/pluginMaps and to compare a plugin's declared
// id.
func shortPluginName(name string) string {
	if strings.HasPrefix(name, "@") {
		parts := strings.SplitN(name[1:], "/", 2)
		scope := "@" + parts[0]
		if len(parts) == 1 {
			return scope
		}
		rest := strings.TrimPrefix(parts[1], "eslint-plugin-")
		return scope + "/" + rest
	}
	return strings.TrimPrefix(name, "eslint-plugin-")
}

// isFilesystemShaped reports whether an extends/plugin specifier looks like
// a path rather than a package name (spec.md §4.F "Plugin names in this
// form may not be filesystem paths" / "A filesystem-shaped name is used as
// -is").
func isFilesystemShaped(name string) bool {
	return strings.HasPrefix(name, "./") ||
		strings.HasPrefix(name, "../") ||
		strings.HasPrefix(name, "/") ||
		strings.Contains(name, ":\\")
}

// hasWhitespace reports whether name contains any whitespace character,
// used by the plugin loader's early "whitespace-found" rejection
// (spec.md §4.F).
func hasWhitespace(name string) bool {
	return strings.ContainsAny(name, " \t\n\r")
}
