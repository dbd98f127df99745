package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// themeFlag is a --theme value restricted to the known palette.
type themeFlag models.Theme

var _ pflag.Value = (*themeFlag)(nil)

func (f *themeFlag) String() string { return string(*f) }
func (f *themeFlag) Type() string   { return "theme" }

func (f *themeFlag) Set(v string) error {
	t := models.Theme(strings.ToLower(strings.TrimSpace(v)))
	if !t.Valid() {
		names := make([]string, 0, len(models.AllThemes()))
		for _, th := range models.AllThemes() {
			names = append(names, string(th))
		}
		return fmt.Errorf("unknown theme %q (one of: %s)", v, strings.Join(names, ", "))
	}
	*f = themeFlag(t)
	return nil
}

// changedFlags lists the flags set on the command line, sorted by name.
func changedFlags(fs *pflag.FlagSet) []string {
	var out []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			out = append(out, f.Name)
		}
	})
	return out
}
