package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"dorkdeck/internal/domain"
	"dorkdeck/internal/eventbus"
)

// Catalog-level failures
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateDork    = errors.New("fragment already in category")
	ErrDorkNotFound     = errors.New("fragment not in category")
)

// defaults seed a fresh catalog, matching the categories the tool ships with
var defaults = []*domain.Category{
	{
		Key:   "files",
		Label: "Files",
		Items: []string{"ext:pdf", "ext:docx", "ext:xlsx", "ext:txt"},
		Tooltips: map[string]string{
			"ext:pdf": "PDF documents only",
		},
	},
	{
		Key:   "content",
		Label: "Content",
		Items: []string{`intitle:"index of"`, "inurl:login", "site:{domain}"},
		Tooltips: map[string]string{
			`intitle:"index of"`: "open directory listings",
			"site:{domain}":      "restrict results to one domain",
		},
	},
	{
		Key:   "secrets",
		Label: "Secrets",
		Items: []string{"filetype:env", "password", `"API Key"`, "inurl:config"},
		Tooltips: map[string]string{
			"filetype:env": "exposed dotenv files",
		},
	},
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Repository loads and saves the dork catalog and saved profiles.
// The on-disk format is JSON; the pre-profile flat shape
// {"category": ["item", ...]} still loads and is upgraded on save.
type Repository struct {
	path       string
	bus        eventbus.EventBus
	categories []*domain.Category
	profiles   map[string]domain.Profile
}

// file shapes

type fileCategory struct {
	Label    string            `json:"label"`
	Items    []string          `json:"items"`
	Tooltips map[string]string `json:"tooltips,omitempty"`
}

type fileProfile struct {
	Category  string            `json:"category"`
	Fragments []string          `json:"fragments"`
	Negated   []string          `json:"negated,omitempty"`
	OrGroups  [][]string        `json:"or_groups,omitempty"`
	Vars      map[string]string `json:"vars,omitempty"`
}

type catalogFile struct {
	Categories map[string]fileCategory `json:"categories"`
	Profiles   map[string]fileProfile  `json:"profiles,omitempty"`
}

// NewRepository creates a repository for the catalog at path. The bus may
// be nil; mutation events are then skipped.
func NewRepository(path string, bus eventbus.EventBus) *Repository {
	return &Repository{
		path:     path,
		bus:      bus,
		profiles: make(map[string]domain.Profile),
	}
}

// Path returns the catalog file location
func (r *Repository) Path() string {
	return r.path
}

// Load reads the catalog from disk. A missing, unparseable, or empty
// file seeds the built-in defaults and writes them out.
func (r *Repository) Load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		return r.seedDefaults()
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Catalog %s is not valid JSON, seeding defaults: %v", r.path, err)
		return r.seedDefaults()
	}

	if _, ok := raw["categories"]; !ok {
		// legacy flat shape: category key -> items
		r.categories = nil
		r.profiles = make(map[string]domain.Profile)
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			var items []string
			if err := json.Unmarshal(raw[k], &items); err != nil {
				continue
			}
			r.categories = append(r.categories, &domain.Category{
				Key:   k,
				Label: capitalize(k),
				Items: items,
			})
		}
		if len(r.categories) == 0 {
			return r.seedDefaults()
		}
		r.publishLoaded()
		return nil
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("Catalog %s has an unusable shape, seeding defaults: %v", r.path, err)
		return r.seedDefaults()
	}

	r.categories = nil
	keys := make([]string, 0, len(f.Categories))
	for k := range f.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fc := f.Categories[k]
		label := fc.Label
		if label == "" {
			label = capitalize(k)
		}
		r.categories = append(r.categories, &domain.Category{
			Key:      k,
			Label:    label,
			Items:    fc.Items,
			Tooltips: fc.Tooltips,
		})
	}

	r.profiles = make(map[string]domain.Profile, len(f.Profiles))
	for name, fp := range f.Profiles {
		r.profiles[name] = domain.Profile{
			Name:      name,
			Category:  fp.Category,
			Fragments: fp.Fragments,
			Negated:   fp.Negated,
			OrGroups:  fp.OrGroups,
			Vars:      fp.Vars,
		}
	}

	// A catalog without a single category is useless; restock it but
	// keep any profiles it carried
	if len(r.categories) == 0 {
		r.categories = cloneCategories(defaults)
		if err := r.Save(); err != nil {
			return err
		}
	}

	r.publishLoaded()
	return nil
}

// seedDefaults replaces the in-memory catalog with the built-in
// categories and writes them out
func (r *Repository) seedDefaults() error {
	r.categories = cloneCategories(defaults)
	r.profiles = make(map[string]domain.Profile)
	if err := r.Save(); err != nil {
		return err
	}
	r.publishLoaded()
	return nil
}

// Save writes the catalog to disk, creating parent directories as needed
func (r *Repository) Save() error {
	f := catalogFile{
		Categories: make(map[string]fileCategory, len(r.categories)),
		Profiles:   make(map[string]fileProfile, len(r.profiles)),
	}
	for _, c := range r.categories {
		f.Categories[c.Key] = fileCategory{
			Label:    c.Label,
			Items:    c.Items,
			Tooltips: c.Tooltips,
		}
	}
	for name, p := range r.profiles {
		f.Profiles[name] = fileProfile{
			Category:  p.Category,
			Fragments: p.Fragments,
			Negated:   p.Negated,
			OrGroups:  p.OrGroups,
			Vars:      p.Vars,
		}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	r.publish(domain.CatalogSaved{Path: r.path})
	return nil
}

// Categories returns the categories in display order
func (r *Repository) Categories() []*domain.Category {
	return r.categories
}

// Category looks a category up by key
func (r *Repository) Category(key string) *domain.Category {
	for _, c := range r.categories {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// AddCategory creates a category with a unique slugified key
func (r *Repository) AddCategory(label string) (*domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("category name is empty")
	}
	c := &domain.Category{
		Key:   r.uniqueKey(slugify(label), ""),
		Label: label,
	}
	r.categories = append(r.categories, c)
	if err := r.Save(); err != nil {
		return nil, err
	}
	r.publish(domain.CategoryAdded{Key: c.Key, Label: c.Label})
	return c, nil
}

// RenameCategory changes a category's label and re-keys it
func (r *Repository) RenameCategory(key, newLabel string) error {
	newLabel = strings.TrimSpace(newLabel)
	if newLabel == "" {
		return errors.New("category name is empty")
	}
	c := r.Category(key)
	if c == nil {
		return ErrCategoryNotFound
	}
	oldKey := c.Key
	if base := slugify(newLabel); base != oldKey {
		c.Key = r.uniqueKey(base, oldKey)
	}
	c.Label = newLabel
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.CategoryRenamed{OldKey: oldKey, NewKey: c.Key, Label: newLabel})
	return nil
}

// DeleteCategory removes a category and its fragments
func (r *Repository) DeleteCategory(key string) error {
	for i, c := range r.categories {
		if c.Key == key {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			if err := r.Save(); err != nil {
				return err
			}
			r.publish(domain.CategoryRemoved{Key: key})
			return nil
		}
	}
	return ErrCategoryNotFound
}

// AddDork appends a fragment to a category
func (r *Repository) AddDork(categoryKey, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("fragment is empty")
	}
	c := r.Category(categoryKey)
	if c == nil {
		return ErrCategoryNotFound
	}
	for _, item := range c.Items {
		if item == text {
			return ErrDuplicateDork
		}
	}
	c.Items = append(c.Items, text)
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.DorkAdded{Category: categoryKey, Text: text})
	return nil
}

// RenameDork replaces a fragment's text in place
func (r *Repository) RenameDork(categoryKey, oldText, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" || newText == oldText {
		return nil
	}
	c := r.Category(categoryKey)
	if c == nil {
		return ErrCategoryNotFound
	}
	for _, item := range c.Items {
		if item == newText {
			return ErrDuplicateDork
		}
	}
	for i, item := range c.Items {
		if item == oldText {
			c.Items[i] = newText
			if tip, ok := c.Tooltips[oldText]; ok {
				delete(c.Tooltips, oldText)
				c.Tooltips[newText] = tip
			}
			if err := r.Save(); err != nil {
				return err
			}
			r.publish(domain.DorkRenamed{Category: categoryKey, OldText: oldText, NewText: newText})
			return nil
		}
	}
	return ErrDorkNotFound
}

// DeleteDorks removes fragments from a category
func (r *Repository) DeleteDorks(categoryKey string, texts []string) error {
	c := r.Category(categoryKey)
	if c == nil {
		return ErrCategoryNotFound
	}
	doomed := make(map[string]bool, len(texts))
	for _, t := range texts {
		doomed[t] = true
	}
	var kept []string
	var removed []string
	for _, item := range c.Items {
		if doomed[item] {
			removed = append(removed, item)
			delete(c.Tooltips, item)
		} else {
			kept = append(kept, item)
		}
	}
	if len(removed) == 0 {
		return ErrDorkNotFound
	}
	c.Items = kept
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.DorkRemoved{Category: categoryKey, Texts: removed})
	return nil
}

// MoveDorks moves fragments from one category to the end of another
func (r *Repository) MoveDorks(fromKey, toKey string, texts []string) error {
	if fromKey == toKey || len(texts) == 0 {
		return nil
	}
	src := r.Category(fromKey)
	dst := r.Category(toKey)
	if src == nil || dst == nil {
		return ErrCategoryNotFound
	}
	moving := make(map[string]bool, len(texts))
	for _, t := range texts {
		moving[t] = true
	}
	var kept []string
	var moved []string
	for _, item := range src.Items {
		if moving[item] {
			moved = append(moved, item)
		} else {
			kept = append(kept, item)
		}
	}
	if len(moved) == 0 {
		return ErrDorkNotFound
	}
	src.Items = kept
	for _, item := range moved {
		dst.Items = append(dst.Items, item)
		if tip, ok := src.Tooltips[item]; ok {
			if dst.Tooltips == nil {
				dst.Tooltips = make(map[string]string)
			}
			dst.Tooltips[item] = tip
			delete(src.Tooltips, item)
		}
	}
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.DorksMoved{FromCategory: fromKey, ToCategory: toKey, Texts: moved})
	return nil
}

// Profiles returns saved profile names in sorted order
func (r *Repository) ProfileNames() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile looks a profile up by name
func (r *Repository) Profile(name string) (domain.Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// SaveProfile stores a profile and persists the catalog
func (r *Repository) SaveProfile(p domain.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is empty")
	}
	r.profiles[p.Name] = p
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.ProfileSaved{Name: p.Name})
	return nil
}

// DeleteProfile removes a profile and persists the catalog
func (r *Repository) DeleteProfile(name string) error {
	if _, ok := r.profiles[name]; !ok {
		return nil
	}
	delete(r.profiles, name)
	if err := r.Save(); err != nil {
		return err
	}
	r.publish(domain.ProfileDeleted{Name: name})
	return nil
}

func (r *Repository) uniqueKey(base, ignore string) string {
	existing := make(map[string]bool, len(r.categories))
	for _, c := range r.categories {
		if c.Key != ignore {
			existing[c.Key] = true
		}
	}
	key := base
	for i := 2; existing[key]; i++ {
		key = fmt.Sprintf("%s-%d", base, i)
	}
	return key
}

func (r *Repository) publishLoaded() {
	r.publish(domain.CatalogLoaded{
		Path:       r.path,
		Categories: len(r.categories),
		Profiles:   len(r.profiles),
	})
}

func (r *Repository) publish(e eventbus.DomainEvent) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "category"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cloneCategories(src []*domain.Category) []*domain.Category {
	out := make([]*domain.Category, len(src))
	for i, c := range src {
		cc := *c
		cc.Items = append([]string(nil), c.Items...)
		cc.Tooltips = make(map[string]string, len(c.Tooltips))
		for k, v := range c.Tooltips {
			cc.Tooltips[k] = v
		}
		out[i] = &cc
	}
	return out
}
