package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidCatalog is returned for catalog files whose top level is not
// a set of namespace tables.
var ErrInvalidCatalog = errors.New("invalid translation catalog")

const catalogPrefix, catalogSuffix = "messages.", ".toml"

// WithCatalogFS loads every messages.<lang>.toml file in dir. Each top
// level table is a namespace:
//
//	[HomePage]
//	title = "EuroData"
//
// Languages found this way are added to the supported languages unless
// WithLanguages was used.
func WithCatalogFS(fsys fs.FS, dir string) Option {
	return func(i *I18n) error {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return fmt.Errorf("read catalog dir %s: %w", dir, err)
		}

		explicit := len(i.languages) > 0
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, catalogPrefix) || !strings.HasSuffix(name, catalogSuffix) {
				continue
			}
			lang := strings.TrimSuffix(strings.TrimPrefix(name, catalogPrefix), catalogSuffix)
			if lang == "" {
				continue
			}

			namespaces, err := decodeCatalog(fsys, path.Join(dir, name))
			if err != nil {
				return err
			}
			for ns, translations := range namespaces {
				i.addTranslations(lang, ns, translations)
			}
			if !explicit {
				i.languages = append(i.languages, lang)
			}
		}
		return nil
	}
}

func decodeCatalog(fsys fs.FS, name string) (map[string]map[string]any, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", name, err)
	}

	namespaces := make(map[string]map[string]any, len(raw))
	for ns, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: top-level key %q is not a table", ErrInvalidCatalog, name, ns)
		}
		namespaces[ns] = table
	}
	return namespaces, nil
}
