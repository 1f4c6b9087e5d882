package econfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidylint/econfig/pkg/bodyloader"
	"github.com/tidylint/econfig/pkg/errtag"
	"github.com/tidylint/econfig/pkg/modresolve"
	"github.com/tidylint/econfig/pkg/rlog"
)

// builtinConfigs holds the fixed bodies backing the two accepted
// "eslint:*" extends forms (spec.md §4.F "The two accepted forms load fixed
// internal files"). This resolver is not itself a linter, so these are
// placeholder bodies representative of a recommended/all ruleset rather
// than a specific rule catalog.
var builtinConfigs = map[string]map[string]interface{}{
	"eslint:recommended": {
		"rules": map[string]interface{}{
			"no-unused-vars": "error",
			"no-undef":       "error",
		},
	},
	"eslint:all": {
		"rules": map[string]interface{}{
			"no-unused-vars": "error",
			"no-undef":       "error",
			"eqeqeq":         "error",
		},
	},
}

var directoryCandidates = []string{
	".eslintrc.js",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.json",
	".eslintrc",
	"package.json",
}

// FactoryOptions configures a ConfigArrayFactory (spec.md §4.F
// "Construction options").
type FactoryOptions struct {
	// Cwd defaults to the process working directory.
	Cwd string

	// AdditionalParserPool/AdditionalPluginPool short-circuit module
	// resolution when their keys match a requested specifier/plugin id.
	AdditionalParserPool map[string]interface{}
	AdditionalPluginPool map[string]*PluginModule

	Resolver     modresolve.Resolver
	Validator    SchemaValidator
	RuleLoader   RuleLoader
	ModuleLoader ModuleLoader
	Logger       *rlog.Logger

	// DisableCache bypasses every ConfigArray's extraction cache (built by
	// Create/LoadFile/LoadOnDirectory), re-running the merge engine on
	// every ExtractConfig call instead of memoizing by matched-index set.
	DisableCache bool
}

// ConfigArrayFactory normalizes raw configuration bodies into
// ConfigArrayElements and assembles ConfigArrays, resolving `extends`,
// `parser`, `plugins`, and `overrides` along the way (spec.md §4.F).
type ConfigArrayFactory struct {
	cwd string

	additionalParserPool map[string]interface{}
	additionalPluginPool map[string]*PluginModule

	resolver     modresolve.Resolver
	validator    SchemaValidator
	ruleLoader   RuleLoader
	moduleLoader ModuleLoader
	logger       *rlog.Logger
	disableCache bool
}

// NewConfigArrayFactory constructs a factory, filling unset options with
// usable defaults (NodeStyleResolver, DefaultSchemaValidator,
// GoPluginModuleLoader, a no-op logger).
func NewConfigArrayFactory(opts FactoryOptions) *ConfigArrayFactory {
	cwd := opts.Cwd
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = modresolve.NewNodeStyleResolver(cwd)
	}
	validator := opts.Validator
	if validator == nil {
		validator = DefaultSchemaValidator{}
	}
	moduleLoader := opts.ModuleLoader
	if moduleLoader == nil {
		moduleLoader = GoPluginModuleLoader{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = rlog.Nop()
	}

	return &ConfigArrayFactory{
		cwd:                  cwd,
		additionalParserPool: opts.AdditionalParserPool,
		additionalPluginPool: opts.AdditionalPluginPool,
		resolver:             resolver,
		validator:            validator,
		ruleLoader:           opts.RuleLoader,
		moduleLoader:         moduleLoader,
		logger:               logger,
		disableCache:         opts.DisableCache,
	}
}

// CreateOptions parameterizes Create/LoadFile/LoadOnDirectory.
type CreateOptions struct {
	FilePath string
	Name     string
	Parent   *ConfigArray
}

// LoadOptions parameterizes LoadFile/LoadOnDirectory (no FilePath: the file
// itself supplies it).
type LoadOptions struct {
	Name   string
	Parent *ConfigArray
}

// Create normalizes an in-memory configuration body and composes it with
// Parent unless the new array declares root:true (spec.md §4.F entry
// points).
func (f *ConfigArrayFactory) Create(data map[string]interface{}, opts CreateOptions) (*ConfigArray, error) {
	name := opts.Name
	if name == "" {
		name = "<input>"
	}

	if err := f.validator.ValidateConfigSchema(data, name); err != nil {
		return nil, errtag.New(errtag.KindSchemaInvalid, "create", name, err)
	}

	elements, err := f.normalizeBody(data, opts.FilePath, name)
	if err != nil {
		return nil, err
	}
	return f.compose(elements, opts.Parent), nil
}

// LoadFile resolves pathOrShareableName against cwd (tolerating both a file
// path and a shareable-config package name), loads and normalizes it, and
// composes with Parent (spec.md §4.F entry points).
func (f *ConfigArrayFactory) LoadFile(pathOrShareableName string, opts LoadOptions) (*ConfigArray, error) {
	resolvedPath := pathOrShareableName
	if !filepath.IsAbs(resolvedPath) {
		candidate := filepath.Join(f.cwd, resolvedPath)
		if fileExists(candidate) {
			resolvedPath = candidate
		} else {
			resolved, err := f.resolver.Resolve(normalizeConfigName(pathOrShareableName), importerFile("", f.cwd))
			if err != nil {
				return nil, errtag.New(errtag.KindFileNotFound, "loadFile", pathOrShareableName, err)
			}
			resolvedPath = resolved
		}
	}

	body, err := bodyloader.Load(resolvedPath)
	if err != nil {
		return nil, errtag.New(errtag.KindFileNotFound, "loadFile", resolvedPath, err)
	}

	name := opts.Name
	if name == "" {
		name = resolvedPath
	}
	if err := f.validator.ValidateConfigSchema(body, name); err != nil {
		return nil, errtag.New(errtag.KindSchemaInvalid, "loadFile", name, err)
	}

	elements, err := f.normalizeBody(body, resolvedPath, name)
	if err != nil {
		return nil, err
	}
	return f.compose(elements, opts.Parent), nil
}

// LoadOnDirectory probes the fixed candidate list in strict order, returning
// the first successfully loaded, schema-validated configuration composed
// with Parent. Returns (nil, nil) if no candidate exists (spec.md §4.F
// "Treat file-not-found ... as 'try next'").
func (f *ConfigArrayFactory) LoadOnDirectory(directory string, opts LoadOptions) (*ConfigArray, error) {
	for _, candidate := range directoryCandidates {
		path := filepath.Join(directory, candidate)
		if !fileExists(path) {
			continue
		}

		body, err := bodyloader.Load(path)
		if err != nil {
			return nil, errtag.New(errtag.KindParseFailure, "loadOnDirectory", path, err)
		}
		if body == nil {
			// package.json without an eslintConfig field: try the next
			// candidate.
			continue
		}

		name := opts.Name
		if name == "" {
			name = path
		}
		if err := f.validator.ValidateConfigSchema(body, name); err != nil {
			return nil, errtag.New(errtag.KindSchemaInvalid, "loadOnDirectory", name, err)
		}

		elements, err := f.normalizeBody(body, path, name)
		if err != nil {
			return nil, err
		}
		f.logger.Info("loadOnDirectory(%s): matched %s", directory, candidate)
		return f.compose(elements, opts.Parent), nil
	}
	return nil, nil
}

// compose builds the new array from elements alone, tests its own root
// flag (per spec.md §9 "Implementations must therefore compute root before
// any parent prepend"), and only then decides whether to prepend parent.
func (f *ConfigArrayFactory) compose(elements []*ConfigArrayElement, parent *ConfigArray) *ConfigArray {
	own := NewConfigArray(elements, f.validator, f.ruleLoader)
	own.SetCacheEnabled(!f.disableCache)
	if parent == nil || own.Root() {
		return own
	}

	combined := make([]*ConfigArrayElement, 0, parent.Len()+len(elements))
	combined = append(combined, parent.Elements()...)
	combined = append(combined, elements...)
	result := NewConfigArray(combined, f.validator, f.ruleLoader)
	result.SetCacheEnabled(!f.disableCache)
	return result
}

// normalizeBody implements spec.md §4.F's nine-step normalization pipeline
// for one configuration body, returning the (not yet index-assigned)
// elements it yields.
func (f *ConfigArrayFactory) normalizeBody(body map[string]interface{}, filePath, name string) ([]*ConfigArrayElement, error) {
	basePath := f.cwd
	if filePath != "" {
		basePath = filepath.Dir(filePath)
	}

	files := toStringList(body["files"])
	excludedFiles := toStringList(body["excludedFiles"])

	entryCriteria, err := NewOverrideTester(files, excludedFiles, basePath)
	if err != nil {
		return nil, err
	}

	var elements []*ConfigArrayElement

	// Step 4: extends.
	for _, extendName := range toStringList(body["extends"]) {
		extended, err := f.resolveExtends(extendName, filePath, basePath, name)
		if err != nil {
			return nil, err
		}
		elements = append(elements, extended...)
	}

	// Steps 5-7: parser/plugins attach to, and synthetic processor
	// elements are emitted alongside, the remaining-body element.
	base := &ConfigArrayElement{Name: name, FilePath: filePath}

	if env, ok := asObject(body["env"]); ok {
		base.Env = env
	}
	if globals, ok := asObject(body["globals"]); ok {
		base.Globals = globals
	}
	if parserOptions, ok := asObject(body["parserOptions"]); ok {
		base.ParserOptions = parserOptions
	}
	if settings, ok := asObject(body["settings"]); ok {
		base.Settings = settings
	}
	if rules, ok := asObject(body["rules"]); ok {
		base.Rules = make(map[string]RuleSetting, len(rules))
		for id, setting := range rules {
			base.Rules[id] = setting
		}
	}
	if processor, ok := body["processor"].(string); ok {
		base.Processor = processor
	}
	if rootVal, ok := body["root"].(bool); ok {
		base.Root = &rootVal
	}

	if parserSpec, ok := body["parser"].(string); ok && parserSpec != "" {
		base.Parser = f.loadParser(parserSpec, filePath, name)
	}

	var syntheticElements []*ConfigArrayElement
	if pluginSpecs := toStringList(body["plugins"]); len(pluginSpecs) > 0 {
		base.Plugins = make(map[string]*LoadedDependency, len(pluginSpecs))
		for _, spec := range pluginSpecs {
			dep := f.loadPlugin(spec, filePath, name)
			base.Plugins[dep.ID] = dep

			if dep.Failed() {
				continue
			}
			mod, ok := dep.Definition.(*PluginModule)
			if !ok || mod == nil {
				continue
			}
			for ext := range mod.Processors {
				if !strings.HasPrefix(ext, ".") {
					continue
				}
				criteria, err := NewOverrideTester([]string{"*" + ext}, nil, basePath)
				if err != nil {
					return nil, err
				}
				syntheticElements = append(syntheticElements, &ConfigArrayElement{
					Name:      fmt.Sprintf("%s#processors[%s]", name, ext),
					FilePath:  filePath,
					Criteria:  criteria,
					Processor: prefixedKey(dep.ID, ext),
				})
			}
		}
	}

	elements = append(elements, syntheticElements...)
	elements = append(elements, base)

	// Step 8: overrides.
	for i, overrideBody := range toMapList(body["overrides"]) {
		childBody := make(map[string]interface{}, len(overrideBody))
		for k, v := range overrideBody {
			childBody[k] = v
		}
		delete(childBody, "root") // overrides cannot declare root.

		childName := fmt.Sprintf("%s#overrides[%d]", name, i)
		childElements, err := f.normalizeBody(childBody, filePath, childName)
		if err != nil {
			return nil, err
		}
		elements = append(elements, childElements...)
	}

	// Step 9: AND entryCriteria onto every yielded element, rebind the
	// result's base path to this basePath, and clear root on anything
	// that now carries criteria.
	for _, el := range elements {
		el.Criteria = And(entryCriteria, el.Criteria)
		if el.Criteria != nil {
			el.Criteria = el.Criteria.WithBasePath(basePath)
			el.Root = nil
		}
	}

	return elements, nil
}

// resolveExtends dispatches to the three extends namespaces and appends the
// "Referenced from: <importer>" trail to any failure (spec.md §4.F).
func (f *ConfigArrayFactory) resolveExtends(name, filePath, basePath, parentName string) ([]*ConfigArrayElement, error) {
	elements, err := f.resolveExtendsBody(name, filePath, basePath)
	if err == nil {
		return elements, nil
	}

	importer := filePath
	if importer == "" {
		importer = parentName
	}
	if tagged, ok := err.(*errtag.Error); ok {
		return nil, tagged.WithReferenced(importer)
	}
	return nil, fmt.Errorf("%w\nReferenced from: %s", err, importer)
}

func (f *ConfigArrayFactory) resolveExtendsBody(name, filePath, basePath string) ([]*ConfigArrayElement, error) {
	switch {
	case strings.HasPrefix(name, "eslint:"):
		return f.resolveEslintExtends(name, filePath)
	case strings.HasPrefix(name, "plugin:"):
		return f.resolvePluginExtends(name, filePath)
	default:
		return f.resolveShareableExtends(name, filePath, basePath)
	}
}

func (f *ConfigArrayFactory) resolveEslintExtends(name, filePath string) ([]*ConfigArrayElement, error) {
	body, ok := builtinConfigs[name]
	if !ok {
		msg := errtag.Template("extend-config-missing", map[string]string{"name": name})
		return nil, errtag.New(errtag.KindFileNotFound, "extends", name, errors.New(msg))
	}
	return f.normalizeBody(body, filePath, name)
}

func (f *ConfigArrayFactory) resolvePluginExtends(name, filePath string) ([]*ConfigArrayElement, error) {
	rest := strings.TrimPrefix(name, "plugin:")
	slash := strings.LastIndex(rest, "/")
	if slash < 0 {
		return nil, errtag.New(errtag.KindInvalidArgument, "extends", name,
			fmt.Errorf(`expected "plugin:<pluginName>/<configName>"`))
	}
	pluginName, configName := rest[:slash], rest[slash+1:]
	if isFilesystemShaped(pluginName) {
		return nil, errtag.New(errtag.KindInvalidArgument, "extends", name,
			fmt.Errorf("plugin names in extends may not be filesystem paths"))
	}

	dep := f.loadPlugin(pluginName, filePath, name)
	if dep.Failed() {
		return nil, dep.Err
	}
	mod, ok := dep.Definition.(*PluginModule)
	if !ok || mod == nil {
		return nil, errtag.New(errtag.KindSchemaInvalid, "extends", name,
			fmt.Errorf("plugin %q does not export a plugin module", pluginName))
	}

	configBody, ok := mod.Configs[configName]
	if !ok {
		msg := errtag.Template("extend-config-missing", map[string]string{"name": name})
		return nil, errtag.New(errtag.KindFileNotFound, "extends", name, errors.New(msg))
	}
	if err := f.validator.ValidateConfigSchema(configBody, name); err != nil {
		return nil, errtag.New(errtag.KindSchemaInvalid, "extends", name, err)
	}
	return f.normalizeBody(configBody, filePath, name)
}

func (f *ConfigArrayFactory) resolveShareableExtends(name, filePath, basePath string) ([]*ConfigArrayElement, error) {
	importer := importerFile(filePath, basePath)

	var resolvedPath string
	switch {
	case isFilesystemShaped(name) && !strings.HasPrefix(name, "./") && !strings.HasPrefix(name, "../"):
		resolvedPath = name
	default:
		request := name
		if !strings.HasPrefix(name, "./") && !strings.HasPrefix(name, "../") {
			request = normalizeConfigName(name)
		}
		resolved, err := f.resolver.Resolve(request, importer)
		if err != nil {
			return nil, err
		}
		resolvedPath = resolved
	}

	body, err := bodyloader.Load(resolvedPath)
	if err != nil {
		return nil, err
	}
	if err := f.validator.ValidateConfigSchema(body, resolvedPath); err != nil {
		return nil, errtag.New(errtag.KindSchemaInvalid, "extends", resolvedPath, err)
	}
	return f.normalizeBody(body, resolvedPath, name)
}

// loadParser loads spec as a parser, consulting the additional pool first
// and otherwise resolving relative to the importer (spec.md §4.F "parsers
// relative to the importer").
func (f *ConfigArrayFactory) loadParser(spec, filePath, name string) *LoadedDependency {
	importer := importerFile(filePath, f.cwd)

	if def, ok := f.additionalParserPool[spec]; ok {
		return NewLoadedDependency(spec, "", name, importer, def)
	}

	resolved, err := f.resolver.Resolve(spec, importer)
	if err != nil {
		return NewFailedDependency(spec, name, importer, err)
	}

	def, err := f.moduleLoader.LoadParser(resolved)
	if err != nil {
		return NewFailedDependency(spec, name, importer, err)
	}
	return NewLoadedDependency(spec, resolved, name, importer, def)
}

// loadPlugin loads spec as a plugin, consulting the additional pool first
// and otherwise resolving relative to cwd (spec.md §4.F "plugins are always
// resolved relative to cwd").
func (f *ConfigArrayFactory) loadPlugin(spec, filePath, name string) *LoadedDependency {
	importer := importerFile("", f.cwd)

	if hasWhitespace(spec) {
		msg := errtag.Template("whitespace-found", map[string]string{"pluginName": spec})
		return NewFailedDependency(shortPluginName(spec), name, importer,
			errtag.New(errtag.KindWhitespaceInSpecifier, "loadPlugin", spec, errors.New(msg)))
	}

	id := shortPluginName(spec)

	if mod, ok := f.additionalPluginPool[id]; ok {
		return NewLoadedDependency(id, "", name, importer, mod)
	}

	request := spec
	if !isFilesystemShaped(spec) {
		request = normalizePluginName(spec)
	}

	resolved, err := f.resolver.Resolve(request, importer)
	if err != nil {
		var notFound *modresolve.ErrModuleNotFound
		if errors.As(err, &notFound) {
			msg := errtag.Template("plugin-missing", map[string]string{"pluginName": spec, "projectRoot": f.cwd})
			return NewFailedDependency(id, name, importer,
				errtag.New(errtag.KindModuleNotFound, "loadPlugin", spec, errors.New(msg)))
		}
		return NewFailedDependency(id, name, importer, err)
	}

	mod, err := f.moduleLoader.LoadPlugin(resolved)
	if err != nil {
		return NewFailedDependency(id, name, importer, err)
	}
	return NewLoadedDependency(id, resolved, name, importer, mod)
}

// importerFile synthesizes an importer path for resolver calls when
// filePath is empty (an in-memory Create with no declared source): the
// resolver only ever consults its directory, so a nonexistent filename
// inside dir is sufficient.
func importerFile(filePath, dir string) string {
	if filePath != "" {
		return filePath
	}
	return filepath.Join(dir, "<input>")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func toStringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toMapList(v interface{}) []map[string]interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, ok := asObject(item); ok {
			out = append(out, m)
		}
	}
	return out
}
