package main

import (
	"io/ioutil"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config controls code generation and the command-line driver. It can
// be read from a YAML file:
//
// 	func: area
// 	param: x
// 	let:
// 	  - r = 2
// 	  - k = r * 3
type Config struct {
	// Func names the generated function.
	Func string `yaml:"func"`
	// Param names the function's single double parameter.
	Param string `yaml:"param"`
	// Pow names the declared power intrinsic.
	Pow string `yaml:"pow"`
	// Var is the symbol that derivar and integrar work on.
	Var string `yaml:"var"`
	// Output is the path of the IR file.
	Output string `yaml:"output"`
	// Let pre-binds names for the run, as "name = expr" entries
	// evaluated in order.
	Let []string `yaml:"let"`
}

func defaultConfig() *Config {
	return &Config{
		Func:   "calc",
		Param:  "x",
		Pow:    "llvm.pow.f64",
		Var:    "x",
		Output: "out.ll",
	}
}

// loadConfig reads the YAML file at path on top of the defaults.
// Unknown keys are errors.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

var (
	identRE  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tempRE   = regexp.MustCompile(`^t[0-9]+$`)
	globalRE = regexp.MustCompile(`^[-A-Za-z$._][-A-Za-z$._0-9]*$`)
)

// validate checks that the names in cfg can appear in the language
// and in the generated IR.
func (cfg *Config) validate() error {
	var errs []error
	for _, f := range []struct{ what, name string }{
		{"param", cfg.Param},
		{"var", cfg.Var},
	} {
		if !identRE.MatchString(f.name) {
			errs = append(errs, errors.Errorf("%s %q is not an identifier", f.what, f.name))
		} else if _, ok := keywords[f.name]; ok {
			errs = append(errs, errors.Errorf("%s %q is a keyword", f.what, f.name))
		}
	}
	if tempRE.MatchString(cfg.Param) {
		errs = append(errs, errors.Errorf("param %q collides with temporary names", cfg.Param))
	}
	if !globalRE.MatchString(cfg.Func) {
		errs = append(errs, errors.Errorf("func %q is not a valid global name", cfg.Func))
	}
	if !globalRE.MatchString(cfg.Pow) {
		errs = append(errs, errors.Errorf("pow %q is not a valid global name", cfg.Pow))
	}
	if cfg.Func == cfg.Pow {
		errs = append(errs, errors.Errorf("func and pow are both %q", cfg.Func))
	}
	for _, l := range cfg.Let {
		if _, _, err := splitLet(l); err != nil {
			errs = append(errs, err)
		}
	}
	return multiError(errs...)
}

// splitLet splits a "name = expr" binding.
func splitLet(s string) (name, expr string, err error) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", errors.Errorf("binding %q: want name = expr", s)
	}
	name, expr = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	if !identRE.MatchString(name) {
		return "", "", errors.Errorf("binding %q: %q is not an identifier", s, name)
	}
	if _, ok := keywords[name]; ok {
		return "", "", errors.Errorf("binding %q: %q is a keyword", s, name)
	}
	return name, expr, nil
}
