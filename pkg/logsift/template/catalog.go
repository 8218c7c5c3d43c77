package template

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// MaxCatalogFileSize is the maximum allowed size for a catalog file (1MB).
	MaxCatalogFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length for a single template
	// pattern (512 bytes). Long hand-written patterns are almost always a
	// mistake and oversized regexes are a ReDoS vector.
	MaxPatternLength = 512

	// MaxEntryCount is the maximum number of templates in a catalog file.
	MaxEntryCount = 1000

	// SupportedVersion is the currently supported catalog file format version.
	SupportedVersion = 1
)

// Entry is one catalog template definition: the pattern source, a
// human-readable description, and an optional fixed field-name list. When
// FieldNames is empty, names are derived from the pattern itself at compile
// time.
type Entry struct {
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Description string   `yaml:"description" json:"description"`
	FieldNames  []string `yaml:"field_names,omitempty" json:"field_names"`
}

// Catalog is an ordered list of candidate templates. Order matters:
// suggestion ties resolve toward the earlier entry.
type Catalog []Entry

// CatalogFile represents the structure of a YAML catalog file.
//
// Example:
//
//	version: 1
//	templates:
//	  - pattern: '[{Timestamp}] {Level}: {Message}'
//	    description: Bracketed timestamp with level
//	  - pattern: '^(\S+) (\S+) (.*)$'
//	    description: Three space-separated columns
//	    field_names: [Host, Tag, Message]
type CatalogFile struct {
	// Version is the catalog file format version. Currently only version 1
	// is supported.
	Version int `yaml:"version"`

	// Templates is the ordered list of template definitions.
	Templates []Entry `yaml:"templates"`
}

// sanitizePathError strips the path from os.PathError so error strings do
// not leak file system layout to users.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads and parses a catalog file from the given path.
// Returns an error if the file cannot be read, is not a regular file, is too
// large, or fails validation.
func Load(path string) (*CatalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", sanitizePathError(err))
	}
	defer f.Close()

	// Stat the descriptor rather than the path so the size and file-type
	// checks apply to the file actually opened.
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog file: %w", sanitizePathError(err))
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("catalog file must be a regular file")
	}
	if info.Size() == 0 {
		return nil, errors.New("catalog file is empty")
	}
	if info.Size() > MaxCatalogFileSize {
		return nil, fmt.Errorf("catalog file too large: %d bytes (max %d)", info.Size(), MaxCatalogFileSize)
	}

	// Read one byte past the limit to notice a file that grew after Stat.
	data, err := io.ReadAll(io.LimitReader(f, MaxCatalogFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", sanitizePathError(err))
	}
	if len(data) > MaxCatalogFileSize {
		return nil, fmt.Errorf("catalog file too large: %d bytes (max %d)", len(data), MaxCatalogFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses a catalog from a byte slice.
func LoadBytes(data []byte) (*CatalogFile, error) {
	if len(data) == 0 {
		return nil, errors.New("catalog file is empty")
	}
	if len(data) > MaxCatalogFileSize {
		return nil, fmt.Errorf("catalog file too large: %d bytes (max %d)", len(data), MaxCatalogFileSize)
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cf.Validate(); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Validate performs schema-level validation on the catalog file: supported
// version, at least one entry, required patterns, length limits, and
// well-formed field-name lists.
//
// Validate does not compile patterns; an entry whose pattern compiles badly
// is still loadable and is simply skipped during suggestion.
func (cf *CatalogFile) Validate() error {
	if cf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", cf.Version, SupportedVersion),
		}
	}
	if len(cf.Templates) == 0 {
		return &ValidationError{
			Field:   "templates",
			Message: "at least one template is required",
		}
	}
	if len(cf.Templates) > MaxEntryCount {
		return &ValidationError{
			Field:   "templates",
			Message: fmt.Sprintf("too many templates (%d), maximum allowed is %d", len(cf.Templates), MaxEntryCount),
		}
	}

	for i, e := range cf.Templates {
		if e.Pattern == "" {
			return &EntryError{Index: i, Description: e.Description, Field: "pattern", Message: "pattern is required"}
		}
		if len(e.Pattern) > MaxPatternLength {
			return &EntryError{
				Index:       i,
				Description: e.Description,
				Field:       "pattern",
				Message:     fmt.Sprintf("pattern too long: %d bytes (max %d)", len(e.Pattern), MaxPatternLength),
			}
		}
		seen := make(map[string]bool, len(e.FieldNames))
		for _, name := range e.FieldNames {
			if name == "" {
				return &EntryError{Index: i, Description: e.Description, Field: "field_names", Message: "field names must not be empty"}
			}
			if seen[name] {
				return &EntryError{
					Index:       i,
					Description: e.Description,
					Field:       "field_names",
					Message:     fmt.Sprintf("duplicate field name %q", name),
				}
			}
			seen[name] = true
		}
	}

	return nil
}

// Compile compiles the entry's pattern, carrying the entry description onto
// the resulting Template.
func (e Entry) Compile() (*Template, error) {
	t, err := New(e.Pattern, e.FieldNames)
	if err != nil {
		return nil, err
	}
	t.Description = e.Description
	return t, nil
}

// Minimal returns the built-in minimal catalog: a single two-field template
// that splits a line into its first token and the rest. It is the fallback
// of last resort when no usable catalog is available.
func Minimal() Catalog {
	return Catalog{{
		Pattern:     "{Token1} {Message}",
		Description: "Minimal default (catalog fallback)",
		FieldNames:  []string{"Token1", "Message"},
	}}
}

// Default returns the built-in catalog of common log line shapes, ordered
// from most to least specific. Suggestion consults it when the host supplies
// no catalog of its own.
func Default() Catalog {
	return Catalog{
		{
			Pattern:     "[{Timestamp}] {Level}: {Message}",
			Description: "Bracketed timestamp with level",
			FieldNames:  []string{"Timestamp", "Level", "Message"},
		},
		{
			Pattern:     "{Date} {Time} {Level} {Message}",
			Description: "Date, time and level columns",
			FieldNames:  []string{"Date", "Time", "Level", "Message"},
		},
		{
			Pattern:     "{Timestamp} {Level} {Message}",
			Description: "Timestamp and level columns",
			FieldNames:  []string{"Timestamp", "Level", "Message"},
		},
		{
			Pattern:     "{Level}: {Message}",
			Description: "Level-prefixed message",
			FieldNames:  []string{"Level", "Message"},
		},
		{
			Pattern:     "{Token1} {Message}",
			Description: "First token and remainder",
			FieldNames:  []string{"Token1", "Message"},
		},
	}
}

// LoadOrMinimal loads a catalog file, degrading to Minimal() on any failure.
// The failure is logged on logger and is not surfaced to the caller:
// suggestion must keep working with whatever catalog it can get.
func LoadOrMinimal(path string, logger *slog.Logger) Catalog {
	cf, err := Load(path)
	if err != nil {
		if logger != nil {
			logger.Warn("catalog load failed, falling back to minimal catalog", "error", err)
		}
		return Minimal()
	}
	return Catalog(cf.Templates)
}
