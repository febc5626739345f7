// Package filter provides expression-based filtering of streaming offers
// using the expr language.
//
// Expressions evaluate against a single offer and must produce a boolean:
//
//	MonetizationType == "FLATRATE"
//	PriceValue > 0 && PriceValue < 10
//	hasAudioLanguage("en") && contains(PackageName, "netflix")
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/justwatch/justwatch"
)

// Filter is a compiled offer filter. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // Allow offer properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Match reports whether the offer satisfies the filter expression. Offers
// that cause an evaluation error are treated as non-matching.
func (f *Filter) Match(offer justwatch.Offer) bool {
	env := runtimeEnvironment(offer)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Apply returns the offers matching the filter, preserving order.
func (f *Filter) Apply(offers []justwatch.Offer) []justwatch.Offer {
	matched := make([]justwatch.Offer, 0, len(offers))
	for _, offer := range offers {
		if f.Match(offer) {
			matched = append(matched, offer)
		}
	}
	return matched
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// helperFunctions creates the static helper functions used during compilation
func helperFunctions() map[string]any {
	env := make(map[string]any, 8)
	addHelperFunctions(env)
	return env
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// runtimeEnvironment creates the runtime environment for filter evaluation
func runtimeEnvironment(offer justwatch.Offer) map[string]any {
	env := make(map[string]any, 32)

	addHelperFunctions(env)

	env["Offer"] = offer

	// Offer-specific helpers using closures
	env["hasAudioLanguage"] = createLanguageFunc(offer.AudioLanguages)
	env["hasSubtitleLanguage"] = createLanguageFunc(offer.SubtitleLanguages)
	env["isFree"] = createMonetizationFunc(offer.MonetizationType, "FREE")
	env["isFlatrate"] = createMonetizationFunc(offer.MonetizationType, "FLATRATE")
	env["isRent"] = createMonetizationFunc(offer.MonetizationType, "RENT")
	env["isBuy"] = createMonetizationFunc(offer.MonetizationType, "BUY")

	// Direct offer properties for convenience
	env["MonetizationType"] = offer.MonetizationType
	env["PresentationType"] = offer.PresentationType
	env["PriceValue"] = derefFloat(offer.PriceValue)
	env["Currency"] = offer.PriceCurrency
	env["Type"] = offer.Type
	env["PackageName"] = offer.Package.Name
	env["TechnicalName"] = offer.Package.TechnicalName
	env["PackageID"] = offer.Package.PackageID
	env["URL"] = offer.URL
	env["ElementCount"] = offer.ElementCount
	env["HasPrice"] = offer.PriceValue != nil

	return env
}

func createLanguageFunc(languages []string) func(string) bool {
	lower := make([]string, len(languages))
	for i, lang := range languages {
		lower[i] = strings.ToLower(lang)
	}
	return func(language string) bool {
		target := strings.ToLower(language)
		for _, lang := range lower {
			if lang == target {
				return true
			}
		}
		return false
	}
}

func createMonetizationFunc(monetizationType, want string) func() bool {
	matches := strings.EqualFold(monetizationType, want)
	return func() bool {
		return matches
	}
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
