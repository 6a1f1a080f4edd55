package webconfig

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"webconfig/internal/bind"
	"webconfig/internal/persist"
	"webconfig/internal/render"
	"webconfig/internal/schema"
	"webconfig/internal/store"
	"webconfig/internal/structs"
)

// WebConfig ties the parameter values to their file and to the form. Every
// method holds the lock for its whole duration, so requests are handled one at
// a time from start to finish.
type WebConfig struct {
	mu     sync.Mutex
	store  *store.Store
	file   *persist.File
	labels render.Labels
}

// New builds the parameter set from schemaText. The returned WebConfig is
// always usable; a non nil error describes parts of the schema that were
// dropped, or a schema that could not be decoded at all.
func New(fs afero.Fs, path, schemaText, identity string, labels render.Labels) (*WebConfig, error) {
	sc, err := schema.Build(schemaText)
	return &WebConfig{
		store:  store.New(sc, identity),
		file:   persist.New(fs, path),
		labels: labels,
	}, err
}

// SetDescription replaces the parameter set with the one described by
// schemaText. Values go back to their defaults; the identity is kept.
func (c *WebConfig) SetDescription(schemaText string) error {
	sc, err := schema.Build(schemaText)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Replace(sc)
	return err
}

func (c *WebConfig) ReadConfig() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Read(c.store)
}

func (c *WebConfig) WriteConfig() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Write(c.store)
}

// DeleteConfig removes the values file and restores the schema defaults.
func (c *WebConfig) DeleteConfig() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.file.Remove(); err != nil {
		return err
	}
	c.store.Reset()
	return nil
}

// Submit applies a form submission. When the submission asks for it the values
// are written; restart is true only if a restart was asked for and the write
// succeeded.
func (c *WebConfig) Submit(fields bind.Fields) (restart bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submit(fields)
}

// Respond applies fields, unless they are nil, and renders the form from the
// resulting values without letting another request in between. A failed save
// is returned as saveErr; the form is rendered regardless.
func (c *WebConfig) Respond(fields bind.Fields, w io.Writer) (restart bool, saveErr, renderErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fields != nil {
		restart, saveErr = c.submit(fields)
	}
	renderErr = render.Form(w, c.store, c.labels)
	return restart, saveErr, renderErr
}

func (c *WebConfig) submit(fields bind.Fields) (bool, error) {
	bind.Submission(fields, c.store)
	if !bind.SaveRequested(fields) {
		return false, nil
	}
	if err := c.file.Write(c.store); err != nil {
		return false, err
	}
	logrus.Infof("Configuration saved to %s", c.file.Path())
	return bind.RestartRequested(fields), nil
}

func (c *WebConfig) Render(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.Form(w, c.store, c.labels)
}

func (c *WebConfig) View() structs.ConfigView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.View()
}

func (c *WebConfig) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Count()
}

func (c *WebConfig) Name(i int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Name(i)
}

func (c *WebConfig) String(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.String(name)
}

func (c *WebConfig) Int(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Int(name)
}

func (c *WebConfig) Float(name string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Float(name)
}

func (c *WebConfig) Bool(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Bool(name)
}

func (c *WebConfig) Identity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Identity()
}

func (c *WebConfig) SetIdentity(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetIdentity(v)
}
