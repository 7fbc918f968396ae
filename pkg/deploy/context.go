package deploy

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/regex"
	"github.com/autobrr/rocketdeploy/pkg/stringutils"
)

const defaultBranch = "HEAD"

var placeholder = regex.MustCompile(`\{\{\s*([\w.:\-]+)\s*\}\}`)

// Context carries the values that {{placeholders}} in configured strings resolve to.
type Context struct {
	Application string
	User        string
	Branch      string
	Target      string
	Vars        map[string]string
}

// NewContext builds a Context from configuration, filling the user from the
// environment and the target from the local hostname when they are not configured.
func NewContext(cfg *config.Configuration) *Context {
	hostname, _ := os.Hostname()

	c := &Context{
		Application: stringutils.FirstNonEmpty(cfg.Application, "Project"),
		User:        stringutils.FirstNonEmpty(cfg.Deploy.User, os.Getenv("USER"), os.Getenv("USERNAME"), "unknown"),
		Branch:      stringutils.FirstNonEmpty(cfg.Deploy.Branch, defaultBranch),
		Target:      stringutils.FirstNonEmpty(cfg.Deploy.Target, hostname, "localhost"),
		Vars:        make(map[string]string, len(cfg.Deploy.Vars)),
	}

	for k, v := range cfg.Deploy.Vars {
		c.Vars[strings.ToLower(k)] = v
	}

	return c
}

// Lookup resolves a placeholder name. Built-in names win over vars.
func (c *Context) Lookup(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "application":
		return c.Application, true
	case "user":
		return c.User, true
	case "branch":
		return c.Branch, true
	case "target":
		return c.Target, true
	}

	v, ok := c.Vars[strings.ToLower(name)]
	return v, ok
}

// Parse replaces every {{name}} in s. Unknown names are reported together in
// a single error and s is returned unchanged.
func (c *Context) Parse(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var missing []string
	out, err := placeholder.ReplaceFunc(s, func(groups []string) string {
		v, ok := c.Lookup(groups[1])
		if !ok {
			missing = append(missing, groups[1])
			return groups[0]
		}
		return v
	})
	if err != nil {
		return s, errors.Wrapf(err, "parse %q", s)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return s, errors.Errorf("unknown placeholder(s) %s in %q", strings.Join(missing, ", "), s)
	}

	return out, nil
}
