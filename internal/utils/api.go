package utils

import (
	"fmt"
	"net/url"

	"unitconv.dev/internal/catalog"
)

// ParseUnitParam retrieves a unit id from the query parameters. An absent
// parameter yields "" without an error; a unit that is not part of cat adds
// a field error.
func ParseUnitParam(params url.Values, key string, cat catalog.Category, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return "", fieldErrors
	}

	if err := ValidateID(val); err != nil || !cat.HasUnit(val) {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return "", fieldErrors
	}
	return val, fieldErrors
}

// ParseValueParam retrieves the raw value text. The text is returned as sent;
// parsing follows the converter's lenient number rules, so only its length is
// checked here.
func ParseValueParam(params url.Values, key string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if err := ValidateInput(val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
		return "", fieldErrors
	}
	return val, fieldErrors
}
