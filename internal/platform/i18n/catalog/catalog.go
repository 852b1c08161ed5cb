// Package catalog loads the locale message files embedded in the binary and
// registers them with golang.org/x/text/message.
//
// Each file lives at locales/<locale>/<namespace>.yaml and holds a flat map
// of quoted keys to quoted values. Keys must be prefixed with the file's
// namespace, and every key of a translated locale must exist in BaseLocale.
package catalog

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the source locale every other catalog translates.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

type file struct {
	locale    string
	namespace string
	messages  map[string]string
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]map[string]string
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		parsed, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, parsed); err != nil {
			return nil, err
		}
	}
	if err := bundle.validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) add(p string, f file) error {
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if f.locale != wantLocale {
		return fmt.Errorf("catalog %s: locale %q must match directory %q", p, f.locale, wantLocale)
	}
	if f.namespace != wantNamespace {
		return fmt.Errorf("catalog %s: namespace %q must match file name %q", p, f.namespace, wantNamespace)
	}
	if _, err := language.Parse(f.locale); err != nil {
		return fmt.Errorf("catalog %s: parse locale: %w", p, err)
	}

	messages, ok := b.locales[f.locale]
	if !ok {
		messages = map[string]string{}
		b.locales[f.locale] = messages
	}
	prefix := f.namespace + "."
	for key, value := range f.messages {
		if !strings.HasPrefix(key, prefix) {
			return fmt.Errorf("catalog %s: key %q must start with %q", p, key, prefix)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, f.locale)
		}
		messages[key] = value
	}
	return nil
}

func (b *Bundle) validate() error {
	base, ok := b.locales[BaseLocale]
	if !ok {
		return fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for _, locale := range b.Locales() {
		for key := range b.locales[locale] {
			if _, ok := base[key]; !ok {
				return fmt.Errorf("locale %s: key %q is not defined in %s", locale, key, BaseLocale)
			}
		}
	}
	return nil
}

// Register installs every message in the default x/text catalog.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag := language.MustParse(locale)
		messages := b.locales[locale]
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, messages[key]); err != nil {
				return fmt.Errorf("register %s %s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns the value of key in locale, falling back to BaseLocale.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if value, ok := b.locales[locale][key]; ok {
		return value, true
	}
	value, ok := b.locales[BaseLocale][key]
	return value, ok
}

// Keys returns the BaseLocale keys, sorted.
func (b *Bundle) Keys() []string {
	out := make([]string, 0, len(b.locales[BaseLocale]))
	for key := range b.locales[BaseLocale] {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func parse(data []byte) (file, error) {
	out := file{messages: map[string]string{}}
	inMessages := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(line, "locale:"):
			out.locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case strings.HasPrefix(line, "namespace:"):
			out.namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case line == "messages:":
			inMessages = true
		case inMessages:
			var key, value string
			key, value, err = parseEntry(line)
			if err == nil {
				if _, exists := out.messages[key]; exists {
					err = fmt.Errorf("duplicate key %q", key)
				}
				out.messages[key] = value
			}
		default:
			err = fmt.Errorf("unexpected line %q", line)
		}
		if err != nil {
			return file{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return file{}, err
	}

	switch {
	case out.locale == "":
		return file{}, fmt.Errorf("missing locale")
	case out.namespace == "":
		return file{}, fmt.Errorf("missing namespace")
	case len(out.messages) == 0:
		return file{}, fmt.Errorf("missing messages")
	}
	return out, nil
}

// parseEntry splits `"key": "value"`. Keys may contain ':' so the key is
// read as a Go quoted string first.
func parseEntry(line string) (string, string, error) {
	keyToken, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("expected quoted key: %w", err)
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", err
	}
	rest := strings.TrimSpace(line[len(keyToken):])
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' after key %q", key)
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest[1:]))
	if err != nil {
		return "", "", fmt.Errorf("unquote value of %q: %w", key, err)
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("message key cannot be blank")
	}
	return key, value, nil
}
