package catalog

import "fmt"

// Catalog is the session-owned, ordered list of modules. Modules are only
// ever replaced wholesale.
type Catalog struct {
	modules []Module
}

// New creates a catalog from the given modules after validating them.
func New(modules []Module) (*Catalog, error) {
	if err := ValidateAll(modules); err != nil {
		return nil, err
	}
	c := &Catalog{modules: make([]Module, 0, len(modules))}
	for _, m := range modules {
		c.modules = append(c.modules, m.Clone())
	}
	return c, nil
}

// Default returns a catalog holding the built-in modules.
func Default() *Catalog {
	c, err := New(DefaultModules())
	if err != nil {
		panic(fmt.Sprintf("built-in modules are invalid: %v", err))
	}
	return c
}

// All returns a copy of all modules in catalog order.
func (c *Catalog) All() []Module {
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		out[i] = m.Clone()
	}
	return out
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// Get returns the module with the given id.
func (c *Catalog) Get(id string) (Module, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Module{}, false
	}
	return c.modules[i].Clone(), true
}

// Replace swaps the module with the same id for m. The catalog is left
// untouched if m is invalid or no module has that id.
func (c *Catalog) Replace(m Module) error {
	if err := Validate(m); err != nil {
		return err
	}
	i := c.indexOf(m.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, m.ID)
	}
	c.modules[i] = m.Clone()
	return nil
}

// Add appends a new module.
func (c *Catalog) Add(m Module) error {
	if err := Validate(m); err != nil {
		return err
	}
	if c.indexOf(m.ID) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
	}
	c.modules = append(c.modules, m.Clone())
	return nil
}

// Search applies the filter rule to the catalog.
func (c *Catalog) Search(query, level string) []Module {
	return Filter(c.All(), query, level)
}

// Levels returns the level selector options for this catalog.
func (c *Catalog) Levels() []string {
	return Levels(c.modules)
}

func (c *Catalog) indexOf(id string) int {
	for i, m := range c.modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}
