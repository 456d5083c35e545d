package config

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskwright/taskwright/internal/config/layer"
	"github.com/taskwright/taskwright/internal/config/loader"
	"github.com/taskwright/taskwright/internal/config/schema"
)

// Manager resolves and mutates the effective configuration. Construct
// one with New at process entry and pass it to consumers; tests build a
// fresh Manager per case instead of resetting shared state.
type Manager struct {
	mu sync.RWMutex

	registry  *schema.Registry
	validator *schema.Validator

	globalPath string
	localPath  string
	overlay    *loader.EnvOverlay

	defaults *layer.Layer
	global   *layer.Layer
	local    *layer.Layer
	env      *layer.Layer

	merged  map[string]any
	sources *layer.SourceMap
	loaded  bool

	log zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithGlobalPath overrides the resolved user-wide config file path.
func WithGlobalPath(path string) Option {
	return func(m *Manager) { m.globalPath = path }
}

// WithProjectDir sets the project root holding the local config file.
func WithProjectDir(dir string) Option {
	return func(m *Manager) { m.localPath = loader.LocalPath(dir) }
}

// WithEnviron overrides the environment source, used by tests.
func WithEnviron(environ func() []string) Option {
	return func(m *Manager) {
		m.overlay = loader.NewEnvOverlayFrom(loader.EnvPrefix, environ)
	}
}

// WithRegistry overrides the schema registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(m *Manager) { m.registry = reg }
}

// WithLogger sets the logger for non-fatal findings (permission
// warnings, chmod failures). Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// New creates a Manager with the given options. Nothing is read from
// disk until Load or the first lazy accessor call.
func New(opts ...Option) *Manager {
	m := &Manager{
		registry: schema.Builtin(),
		overlay:  loader.NewEnvOverlay(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.globalPath == "" {
		m.globalPath = loader.GlobalPath()
	}
	if m.localPath == "" {
		m.localPath = loader.LocalPath(".")
	}
	m.validator = schema.NewValidator(m.registry)
	return m
}

// GlobalPath returns the resolved user-wide config file path.
func (m *Manager) GlobalPath() string { return m.globalPath }

// LocalPath returns the resolved project-local config file path.
func (m *Manager) LocalPath() string { return m.localPath }

// Load reads all four layers, merges them in precedence order, and
// validates the result. Parse and validation errors propagate and leave
// any previously loaded state untouched.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() error {
	defaults := layer.NewWithData(layer.SourceDefault, m.registry.Defaults())

	globalData, err := loader.LoadFile(m.globalPath)
	if err != nil {
		return err
	}
	global := layer.NewWithData(layer.SourceGlobal, globalData)
	global.Path = m.globalPath

	localData, err := loader.LoadFile(m.localPath)
	if err != nil {
		return err
	}
	local := layer.NewWithData(layer.SourceLocal, localData)
	local.Path = m.localPath

	env := layer.NewWithData(layer.SourceEnv, m.overlay.Load())

	merged, sources := m.mergeLayers(defaults, global, local, env)
	if err := m.validator.Validate(merged); err != nil {
		return err
	}

	m.defaults, m.global, m.local, m.env = defaults, global, local, env
	m.merged, m.sources = merged, sources
	m.loaded = true

	m.checkPermissions()
	return nil
}

// mergeLayers deep-merges the given layers in order and rebuilds the
// source map from scratch.
func (m *Manager) mergeLayers(layers ...*layer.Layer) (map[string]any, *layer.SourceMap) {
	merged := make(map[string]any)
	sources := layer.NewSourceMap(m.schemaLeaf)
	for _, l := range layers {
		if l == nil || len(l.Data) == 0 {
			continue
		}
		merged = layer.DeepMerge(merged, l.Data)
		sources.Track(l.Data, l.Source)
	}
	return merged, sources
}

// schemaLeaf treats object-typed fields as leaves so their attribution
// and masking stay whole, instead of sniffing shapes from the data.
func (m *Manager) schemaLeaf(path string) bool {
	leaf, known := m.registry.IsLeaf(path)
	return known && leaf
}

// ensureLoaded lazily loads on first access. Must be called with the
// write lock held.
func (m *Manager) ensureLoaded() error {
	if m.loaded {
		return nil
	}
	return m.load()
}

// Get returns the effective value at a dotted path. The second result
// is false on any missing segment. Auto-loads on first use; a failing
// auto-load is logged and reads as missing.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		m.log.Error().Err(err).Msg("config auto-load failed")
		return nil, false
	}
	return layer.GetByPath(m.merged, path)
}

// GetDefault returns the effective value at path, or fallback when the
// path has no effective value.
func (m *Manager) GetDefault(path string, fallback any) any {
	if v, ok := m.Get(path); ok {
		return v
	}
	return fallback
}

// GetString returns a string value at the given path.
func (m *Manager) GetString(path string) (string, error) {
	v, ok := m.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: valueTypeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (m *Manager) GetInt(path string) (int, error) {
	v, ok := m.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: valueTypeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (m *Manager) GetBool(path string) (bool, error) {
	v, ok := m.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: valueTypeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (m *Manager) GetFloat(path string) (float64, error) {
	v, ok := m.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: valueTypeName(v)}
	}
}

// Set stores value at path in the local layer, or the global layer when
// global is true. The proposed merge is validated before anything
// becomes visible: a failing Set leaves layers, merged view, and source
// map exactly as they were.
func (m *Manager) Set(path string, value any, global bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}
	if len(layer.ParsePath(path)) == 0 {
		return ErrInvalidPath
	}

	target := m.local
	if global {
		target = m.global
	}

	// Stage the mutation on a clone so a validation failure never leaks
	// into the live layer.
	staged := target.Clone()
	layer.SetByPath(staged.Data, path, value)

	merged, sources := m.mergeLayers(m.stackWith(staged)...)
	if err := m.validator.Validate(merged); err != nil {
		return err
	}

	if global {
		m.global = staged
	} else {
		m.local = staged
	}
	m.merged, m.sources = merged, sources
	return nil
}

// Delete removes a leaf from the local layer (or global when global is
// true), reporting whether it existed. Removal re-merges and validates;
// a reveal of an invalid shadowed value is rejected atomically.
func (m *Manager) Delete(path string, global bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return false, err
	}

	target := m.local
	if global {
		target = m.global
	}

	staged := target.Clone()
	if !layer.DeleteByPath(staged.Data, path) {
		return false, nil
	}

	merged, sources := m.mergeLayers(m.stackWith(staged)...)
	if err := m.validator.Validate(merged); err != nil {
		return false, err
	}

	if global {
		m.global = staged
	} else {
		m.local = staged
	}
	m.merged, m.sources = merged, sources
	return true, nil
}

// stackWith returns the four layers in precedence order with the layer
// matching staged's source swapped out for staged.
func (m *Manager) stackWith(staged *layer.Layer) []*layer.Layer {
	stack := []*layer.Layer{m.defaults, m.global, m.local, m.env}
	for i, l := range stack {
		if l != nil && l.Source == staged.Source {
			stack[i] = staged
		}
	}
	return stack
}

// Save persists the local layer (or global when global is true) to its
// backing file with sensitive leaves masked. The live layer keeps its
// real values. The global file additionally gets owner-only permission
// bits, best-effort.
func (m *Manager) Save(global bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}
	if global {
		return m.saveGlobal()
	}
	return m.saveLocal()
}

func (m *Manager) saveGlobal() error {
	masked := maskSensitive(m.global.Data, m.registry.SensitivePaths())
	if err := loader.SaveFile(m.globalPath, masked); err != nil {
		return err
	}
	if err := loader.RestrictPermissions(m.globalPath); err != nil {
		m.log.Warn().Err(err).Str("path", m.globalPath).
			Msg("could not restrict config file permissions")
	}
	return nil
}

func (m *Manager) saveLocal() error {
	masked := maskSensitive(m.local.Data, m.registry.SensitivePaths())
	return loader.SaveFile(m.localPath, masked)
}

// GetSource returns the layer that supplied the effective value at
// path, defaulting to the defaults layer when the path is unattributed.
func (m *Manager) GetSource(path string) layer.Source {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		m.log.Error().Err(err).Msg("config auto-load failed")
		return layer.SourceDefault
	}
	if src, ok := m.sources.Lookup(path); ok {
		return src
	}
	return layer.SourceDefault
}

// GetWithSources returns the merged configuration with every leaf
// replaced by a {value, source} pair. Values are not masked; use
// GetMasked for anything that prints.
func (m *Manager) GetWithSources() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		m.log.Error().Err(err).Msg("config auto-load failed")
		return map[string]any{}
	}
	return m.annotate(m.merged, "")
}

func (m *Manager) annotate(data map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(data))
	for key, val := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := val.(map[string]any); ok && !m.schemaLeaf(path) {
			out[key] = m.annotate(nested, path)
			continue
		}

		src, ok := m.sources.Lookup(path)
		if !ok {
			src = layer.SourceDefault
		}
		out[key] = map[string]any{
			"value":  val,
			"source": src.String(),
		}
	}
	return out
}

// GetMasked returns the merged configuration with sensitive leaves
// replaced by the placeholder, for any caller that prints config.
func (m *Manager) GetMasked() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		m.log.Error().Err(err).Msg("config auto-load failed")
		return map[string]any{}
	}
	return maskSensitive(m.merged, m.registry.SensitivePaths())
}

// Merged returns a deep copy of the effective configuration.
func (m *Manager) Merged() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		m.log.Error().Err(err).Msg("config auto-load failed")
		return map[string]any{}
	}
	return layer.Clone(m.merged)
}

// MigrateToGlobal merges the local layer into the global layer and
// persists both files masked.
func (m *Manager) MigrateToGlobal() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}

	m.global.Data = layer.DeepMerge(m.global.Data, m.local.Data)
	m.merged, m.sources = m.mergeLayers(m.defaults, m.global, m.local, m.env)

	if err := m.saveGlobal(); err != nil {
		return err
	}
	return m.saveLocal()
}

// CopyFromGlobal merges the global layer into the local layer and
// persists both files masked.
func (m *Manager) CopyFromGlobal() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}

	m.local.Data = layer.DeepMerge(m.local.Data, m.global.Data)
	m.merged, m.sources = m.mergeLayers(m.defaults, m.global, m.local, m.env)

	if err := m.saveGlobal(); err != nil {
		return err
	}
	return m.saveLocal()
}

// Clear empties the chosen layer, re-persists its file, and reloads.
func (m *Manager) Clear(global bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}

	if global {
		m.global.Data = map[string]any{}
		if err := m.saveGlobal(); err != nil {
			return err
		}
	} else {
		m.local.Data = map[string]any{}
		if err := m.saveLocal(); err != nil {
			return err
		}
	}
	return m.load()
}

// checkPermissions warns, without failing, when the global file is
// readable by other users while holding at least one real secret.
func (m *Manager) checkPermissions() {
	if m.global == nil || !hasRealSecret(m.global.Data, m.registry.SensitivePaths()) {
		return
	}
	open, err := loader.WorldReadable(m.globalPath)
	if err != nil || !open {
		return
	}
	m.log.Warn().Str("path", m.globalPath).
		Msgf("config file is readable by other users; run: chmod 600 %s", m.globalPath)
}

// valueTypeName names a value's dynamic type for typed-getter errors.
func valueTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float32, float64:
		return "float64"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
