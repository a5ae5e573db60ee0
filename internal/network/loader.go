package network

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/portgraph/internal/ctxlog"
)

// Loader reads network descriptions from .hcl files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL network loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every .hcl file found under paths into one validated model.
// Directories are walked recursively; missing paths are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Network loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := NewModel()
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := decodeInto(model, hclFile.Body, file); err != nil {
			return nil, err
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Network loading complete.", "elements", len(model.Elements), "connections", len(model.Connections), "fires", len(model.Fires))
	return model, nil
}

// LoadSource parses a single in-memory description. filename is only used
// in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*Model, error) {
	hclFile, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	model := NewModel()
	if err := decodeInto(model, hclFile.Body, filename); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Network source loaded.", "file", filename, "elements", len(model.Elements))
	return model, nil
}

// decodeInto decodes one file body and merges its blocks into model.
func decodeInto(model *Model, body hcl.Body, file string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	var elements []*Element
	for _, b := range root.StateSources {
		elements = append(elements, &Element{Name: b.Name, Kind: KindStateSource, Description: b.Description, Value: b.Value, Tracked: true})
	}
	for _, b := range root.StateSinks {
		elements = append(elements, &Element{Name: b.Name, Kind: KindStateSink, Description: b.Description, Tracked: true})
	}
	for _, b := range root.StateRelays {
		elements = append(elements, &Element{Name: b.Name, Kind: KindStateRelay, Description: b.Description, Tracked: true})
	}
	for _, b := range root.EventSources {
		elements = append(elements, &Element{Name: b.Name, Kind: KindEventSource, Description: b.Description, Tracked: true})
	}
	for _, b := range root.EventSinks {
		elements = append(elements, &Element{Name: b.Name, Kind: KindEventSink, Description: b.Description, Tracked: true})
	}
	for _, b := range root.Transforms {
		tracked := b.Tracked == nil || *b.Tracked
		elements = append(elements, &Element{Name: b.Name, Kind: KindTransform, Description: b.Description, Expr: b.Expr, Tracked: tracked})
	}

	for _, el := range elements {
		if !model.Add(el) {
			return fmt.Errorf("%w: %s: duplicate element name %q", ErrInvalidModel, file, el.Name)
		}
	}
	for _, c := range root.Connects {
		model.Connections = append(model.Connections, &Connection{Chain: c.Chain})
	}
	for _, f := range root.Fires {
		model.Fires = append(model.Fires, &Fire{Target: f.Target, Value: f.Value})
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
