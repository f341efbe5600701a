package catalog

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/validation"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// classDef is a single weapon class entry as it appears in the catalog document
type classDef struct {
	Color         string               `json:"color"`
	Emoji         string               `json:"emoji"`
	Types         []string             `json:"types"`
	BaseRange     float64              `json:"baseRange"`
	StatModifiers domain.StatModifiers `json:"statModifiers"`
	IsShield      bool                 `json:"isShield"`
}

type rarityDef struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	StatBonus float64 `json:"statBonus"`
}

// Loader reads catalog documents from disk
type Loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader that validates documents with the embedded schemas
func NewLoader() *Loader {
	schemas, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return &Loader{schemaValidator: validation.NewSchemaValidator(schemas)}
}

// Load reads and validates the class and rarity documents. Both JSON and YAML
// documents are accepted, chosen by file extension.
func Load(ctx context.Context, classesPath, raritiesPath string) (*Catalog, error) {
	return NewLoader().Load(ctx, classesPath, raritiesPath)
}

// Load reads and validates the class and rarity documents
func (l *Loader) Load(ctx context.Context, classesPath, raritiesPath string) (*Catalog, error) {
	var classDefs map[string]classDef
	if err := l.readDocument(classesPath, ClassesSchemaName, &classDefs); err != nil {
		return nil, err
	}

	var rarityDefs []rarityDef
	if err := l.readDocument(raritiesPath, RaritiesSchemaName, &rarityDefs); err != nil {
		return nil, err
	}

	classes := make([]domain.WeaponClass, 0, len(classDefs))
	for name, def := range classDefs {
		classes = append(classes, def.toDomain(name))
	}

	rarities := make([]domain.Rarity, 0, len(rarityDefs))
	for _, def := range rarityDefs {
		rarities = append(rarities, domain.Rarity{Name: def.Name, Color: def.Color, StatBonus: def.StatBonus})
	}

	cat, err := New(classes, rarities)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"classes", len(classes),
		"types", len(cat.TypeNames()),
		"classes_path", classesPath,
		"rarities_path", raritiesPath)

	return cat, nil
}

func (def classDef) toDomain(name string) domain.WeaponClass {
	kind := domain.ClassStandard
	if def.IsShield {
		kind = domain.ClassShield
	}
	return domain.WeaponClass{
		Name:          name,
		Color:         def.Color,
		Icon:          def.Emoji,
		Types:         def.Types,
		BaseRange:     def.BaseRange,
		StatModifiers: def.StatModifiers,
		Kind:          kind,
	}
}

// readDocument loads path, validates it against the named schema and decodes it into out
func (l *Loader) readDocument(path, schemaName string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(ErrMsgReadCatalogFailed, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return fmt.Errorf(ErrMsgYAMLConvertFailed, path, err)
		}
	default:
		return fmt.Errorf(ErrMsgUnsupportedFormat, domain.ErrInvalidCatalog, filepath.Ext(path))
	}

	if err := l.schemaValidator.ValidateBytes(data, schemaName); err != nil {
		return fmt.Errorf("%w: schema validation failed for %s: %w", domain.ErrInvalidCatalog, path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf(ErrMsgParseCatalogFailed, path, err)
	}
	return nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one schema
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return json.Marshal(doc)
}
