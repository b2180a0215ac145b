package managers

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/hostgen/pkg/errors"
)

// Placeholder is replaced by the item(s) in install and remove templates
const Placeholder = "#:?"

var safeNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// definitionValidate is the validator instance for backend definitions.
// Initialized in init() with custom validators.
var definitionValidate *validator.Validate

func init() {
	definitionValidate = validator.New()
	_ = definitionValidate.RegisterValidation("placeholder", validatePlaceholder)
	_ = definitionValidate.RegisterValidation("safename", validateSafeName)
}

// validatePlaceholder requires exactly one placeholder marker
func validatePlaceholder(fl validator.FieldLevel) bool {
	return strings.Count(fl.Field().String(), Placeholder) == 1
}

// validateSafeName accepts a single, portable file name component
func validateSafeName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name != "." && name != ".." && safeNamePattern.MatchString(name)
}

// Options are the [config] table of a definition
type Options struct {
	ManyArgs bool `toml:"many_args"`
}

// Definition describes how to drive one package-manager backend
type Definition struct {
	Install    string  `toml:"install" validate:"required,placeholder"`
	Remove     string  `toml:"remove" validate:"required,placeholder"`
	Sync       string  `toml:"sync"`
	Upgrade    string  `toml:"upgrade"`
	Config     Options `toml:"config"`
	HookName   string  `toml:"hook_name" validate:"safename"`
	PluralName string  `toml:"plural_name" validate:"required"`
}

// defaultDefinition is the starting point decoding fills in
func defaultDefinition() Definition {
	return Definition{Config: Options{ManyArgs: true}}
}

// applyDefaults fills the name-derived fields left empty
func (d *Definition) applyDefaults(name string) {
	if d.HookName == "" {
		d.HookName = name
	}
	if d.PluralName == "" {
		d.PluralName = name
	}
}

// Validate checks the definition and reports every violation at once.
func (d *Definition) Validate() error {
	err := definitionValidate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.ErrManagerInvalid, "invalid manager definition")
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return errors.Wrap(stderrors.Join(problems...), errors.ErrManagerInvalid, "invalid manager definition")
}

func describeFieldError(fe validator.FieldError) error {
	field := tomlFieldName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "placeholder":
		return fmt.Errorf("%s must contain exactly one %q marker, got %q", field, Placeholder, fe.Value())
	case "safename":
		return fmt.Errorf("%s %q must match [A-Za-z0-9._-]+ and not be '.' or '..'", field, fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
}

func tomlFieldName(structField string) string {
	switch structField {
	case "HookName":
		return "hook_name"
	case "PluralName":
		return "plural_name"
	default:
		return strings.ToLower(structField)
	}
}

// Commands expands a template for items. With many_args one command
// receives all items joined by spaces, otherwise one command per item.
func (d *Definition) Commands(template string, items []string) []string {
	if len(items) == 0 {
		return nil
	}
	if d.Config.ManyArgs {
		return []string{strings.Replace(template, Placeholder, strings.Join(items, " "), 1)}
	}
	commands := make([]string, 0, len(items))
	for _, item := range items {
		commands = append(commands, strings.Replace(template, Placeholder, item, 1))
	}
	return commands
}
