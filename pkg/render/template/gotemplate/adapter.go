package gotemplate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render/template"
)

// DefaultExtension is appended to template identifiers that lack one.
const DefaultExtension = ".tpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	searchPath []string
	templates  []fs.FS
	extension  string
	globalData map[string]any
}

// WithSearchPath appends directories searched, in order, for templates.
// Directories are consulted before any WithFS filesystem.
func WithSearchPath(dirs ...string) Option {
	return func(cfg *config) {
		for _, dir := range dirs {
			if trimmed := strings.TrimSpace(dir); trimmed != "" {
				cfg.searchPath = append(cfg.searchPath, trimmed)
			}
		}
	}
}

// WithFS appends an fs.FS searched after the directories.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = append(cfg.templates, files)
		}
	}
}

// WithExtension overrides the default template extension used by the engine.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds values visible to every template. Render data with the
// same key shadows a global.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set that
// searches directories first and embedded filesystems second.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
	dirs        []string
	filesystems []fs.FS
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.Lookup           = (*Engine)(nil)
)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if len(cfg.searchPath) == 0 && len(cfg.templates) == 0 {
		return nil, errors.New("gotemplate: need to provide a search path or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	for _, dir := range cfg.searchPath {
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: search dir %q: %w", dir, err)
		}
		loaders = append(loaders, loader)
	}
	for _, files := range cfg.templates {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("nodeview", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
		dirs:        append([]string(nil), cfg.searchPath...),
		filesystems: append([]fs.FS(nil), cfg.templates...),
	}
	registerDefaultFilters()

	if len(cfg.globalData) > 0 {
		globals, err := convertToContext(cfg.globalData)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: global data: %w", err)
		}
		if engine.templateSet.Globals == nil {
			engine.templateSet.Globals = make(pongo2.Context)
		}
		engine.templateSet.Globals.Update(globals)
	}

	return engine, nil
}

// Render treats name as inline template content when it contains template
// delimiters, otherwise as a template identifier.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads (and caches) the named template and executes it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	templatePath := e.templatePath(name)

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	// Helpers may re-enter the engine, so no lock is held while executing.
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", templatePath, err)
	}
	return writeAll(buf.String(), out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return writeAll(buf.String(), out)
}

// HasTemplate reports whether name resolves to a file on the search path.
func (e *Engine) HasTemplate(name string) bool {
	if e == nil {
		return false
	}
	templatePath := e.templatePath(name)

	e.mu.RLock()
	_, cached := e.templates[templatePath]
	e.mu.RUnlock()
	if cached {
		return true
	}

	for _, dir := range e.dirs {
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(templatePath))); err == nil && !info.IsDir() {
			return true
		}
	}
	for _, files := range e.filesystems {
		if info, err := fs.Stat(files, path.Clean(templatePath)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// SearchPath returns the directories consulted before embedded filesystems.
func (e *Engine) SearchPath() []string {
	return append([]string(nil), e.dirs...)
}

// Reset drops every cached template so the next render reloads from disk.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates = make(map[string]*pongo2.Template)
}

// Watch resets the template cache whenever a file in the search path changes.
// It blocks until ctx is cancelled. onChange, when set, observes each event.
func (e *Engine) Watch(ctx context.Context, onChange func(fsnotify.Event)) error {
	if len(e.dirs) == 0 {
		return errors.New("gotemplate: no search directories to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gotemplate: create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range e.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("gotemplate: watch %q: %w", dir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			e.Reset()
			if onChange != nil {
				onChange(event)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("gotemplate: watch: %w", err)
		}
	}
}

func (e *Engine) templatePath(name string) string {
	templatePath := strings.TrimSpace(name)
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}
	return templatePath
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.templates[path]; ok {
		return cached, nil
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func writeAll(rendered string, out []io.Writer) (string, error) {
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

// convertToContext copies string keyed maps into a pongo2.Context. Values are
// passed through untouched so templates can hand nodes back to helpers.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return copyContext(v), nil
	case map[string]any:
		return copyContext(v), nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("unsupported template data %T", data)
	}
	out := make(pongo2.Context, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := strings.TrimSpace(iter.Key().String())
		if key == "" {
			continue
		}
		out[key] = iter.Value().Interface()
	}
	return out, nil
}

func copyContext(in map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

var filtersOnce sync.Once

// registerDefaultFilters adds the filters to pongo2's global filter table.
func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
		if !pongo2.FilterExists("compact") {
			_ = pongo2.RegisterFilter("compact", filterCompact)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCompact renders an IRI with the default prefixes, e.g.
// {{ type|compact }} -> "foaf:Person".
func filterCompact(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	raw := strings.TrimSpace(in.String())
	if raw == "" {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(graph.DefaultPrefixes().Compact(graph.Identifier(raw))), nil
}
