// Package configstore loads the YAML documents that drive a run: the model
// registry, prompt catalog, message catalog and browser settings. Loading
// never fails past this package; problems are logged and reported as false.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"gopkg.in/yaml.v3"
)

// Document file names inside the config directory.
const (
	ModelsFile   = "models.yaml"
	PromptsFile  = "prompts.yaml"
	MessagesFile = "messages.yaml"
	BrowserFile  = "browser.yaml"
)

var (
	// ErrNotFound is reported when a document file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrEmpty is reported when a document has no content, including an
	// empty mapping.
	ErrEmpty = errors.New("config file is empty")
	// ErrMalformed is reported when a document cannot be decoded.
	ErrMalformed = errors.New("config file is malformed")
)

// Documents groups the four documents of a run.
type Documents struct {
	Models   *ModelsDocument
	Prompts  PromptCatalog
	Messages *MessageCatalog
	Browser  *BrowserSettings
}

// Store reads documents from a fixed directory.
type Store struct {
	dir    string
	logger logger.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, log logger.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: log,
	}
}

// Dir returns the config directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load decodes the named document into v. It returns false and logs a
// warning when the file is missing, empty or malformed.
func (s *Store) Load(ctx context.Context, name string, v interface{}) bool {
	if err := s.read(name, v); err != nil {
		s.logger.Warn(ctx, "failed to load config file", map[string]interface{}{
			"file":  name,
			"dir":   s.dir,
			"error": err.Error(),
		})
		return false
	}
	s.logger.Debug(ctx, "config file loaded", map[string]interface{}{
		"file": name,
	})
	return true
}

func (s *Store) read(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if isEmpty(&root) {
		return fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	if err := root.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return nil
}

func isEmpty(root *yaml.Node) bool {
	if root.Kind == 0 || len(root.Content) == 0 {
		return true
	}
	n := root.Content[0]
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) == 0
	case yaml.ScalarNode:
		return n.Tag == "!!null"
	}
	return false
}

// LoadModels loads the model registry.
func (s *Store) LoadModels(ctx context.Context) (*ModelsDocument, bool) {
	var doc ModelsDocument
	if !s.Load(ctx, ModelsFile, &doc) {
		return nil, false
	}
	return &doc, true
}

// LoadPrompts loads the prompt catalog.
func (s *Store) LoadPrompts(ctx context.Context) (PromptCatalog, bool) {
	var catalog PromptCatalog
	if !s.Load(ctx, PromptsFile, &catalog) {
		return nil, false
	}
	return catalog, true
}

// LoadMessages loads the message catalog.
func (s *Store) LoadMessages(ctx context.Context) (*MessageCatalog, bool) {
	var catalog MessageCatalog
	if !s.Load(ctx, MessagesFile, &catalog) {
		return nil, false
	}
	return &catalog, true
}

// LoadBrowser loads the browser and runtime settings.
func (s *Store) LoadBrowser(ctx context.Context) (*BrowserSettings, bool) {
	var settings BrowserSettings
	if !s.Load(ctx, BrowserFile, &settings) {
		return nil, false
	}
	return &settings, true
}

// LoadAll loads every document. Each load is attempted independently; the
// result is true only when all four succeeded. Documents that did load are
// returned either way.
func (s *Store) LoadAll(ctx context.Context) (*Documents, bool) {
	docs := &Documents{}
	var okModels, okPrompts, okMessages, okBrowser bool

	docs.Models, okModels = s.LoadModels(ctx)
	docs.Prompts, okPrompts = s.LoadPrompts(ctx)
	docs.Messages, okMessages = s.LoadMessages(ctx)
	docs.Browser, okBrowser = s.LoadBrowser(ctx)

	return docs, okModels && okPrompts && okMessages && okBrowser
}

// Missing lists the document files that failed to load.
func (d *Documents) Missing() []string {
	var missing []string
	if d == nil || d.Models == nil {
		missing = append(missing, ModelsFile)
	}
	if d == nil || d.Prompts == nil {
		missing = append(missing, PromptsFile)
	}
	if d == nil || d.Messages == nil {
		missing = append(missing, MessagesFile)
	}
	if d == nil || d.Browser == nil {
		missing = append(missing, BrowserFile)
	}
	return missing
}
