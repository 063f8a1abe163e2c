package actions

import "math"

// Action parameters originate from JSON webhook payloads or templated config
// rules. Numbers arrive as float64, lists as []any. The accessors in this
// file convert them and distinguish a missing key from a wrongly typed value.

func strParam(params map[string]any, key string) (val string, exist bool, err error) {
	v, exist := params[key]
	if !exist {
		return "", false, nil
	}

	str, ok := v.(string)
	if !ok {
		return "", true, newValidationError("parameter %q has type %T, expected string", key, v)
	}

	return str, true, nil
}

func requireStrParam(params map[string]any, key string) (string, error) {
	val, exist, err := strParam(params, key)
	if err != nil {
		return "", err
	}

	if !exist || val == "" {
		return "", newValidationError("required parameter %q is missing", key)
	}

	return val, nil
}

func boolParam(params map[string]any, key string) (val bool, err error) {
	v, exist := params[key]
	if !exist {
		return false, nil
	}

	b, ok := v.(bool)
	if !ok {
		return false, newValidationError("parameter %q has type %T, expected bool", key, v)
	}

	return b, nil
}

func int64Param(params map[string]any, key string) (val int64, exist bool, err error) {
	v, exist := params[key]
	if !exist {
		return 0, false, nil
	}

	switch n := v.(type) {
	case int64:
		return n, true, nil
	case int:
		return int64(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, true, newValidationError("parameter %q is not an integer: %v", key, n)
		}

		return int64(n), true, nil
	default:
		return 0, true, newValidationError("parameter %q has type %T, expected integer", key, v)
	}
}

func requireInt64Param(params map[string]any, key string) (int64, error) {
	val, exist, err := int64Param(params, key)
	if err != nil {
		return 0, err
	}

	if !exist {
		return 0, newValidationError("required parameter %q is missing", key)
	}

	return val, nil
}

func strSliceParam(params map[string]any, key string) ([]string, error) {
	v, exist := params[key]
	if !exist {
		return nil, nil
	}

	switch list := v.(type) {
	case []string:
		return list, nil

	case []any:
		result := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, newValidationError("parameter %q contains a %T element, expected string", key, item)
			}

			result = append(result, str)
		}

		return result, nil

	default:
		return nil, newValidationError("parameter %q has type %T, expected string list", key, v)
	}
}

func requireStrSliceParam(params map[string]any, key string) ([]string, error) {
	val, err := strSliceParam(params, key)
	if err != nil {
		return nil, err
	}

	if len(val) == 0 {
		return nil, newValidationError("required parameter %q is missing or empty", key)
	}

	return val, nil
}

func int64SliceParam(params map[string]any, key string) ([]int64, error) {
	v, exist := params[key]
	if !exist {
		return nil, nil
	}

	list, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]int64); isTyped {
			return typed, nil
		}

		return nil, newValidationError("parameter %q has type %T, expected integer list", key, v)
	}

	result := make([]int64, 0, len(list))
	for _, item := range list {
		tmp := map[string]any{key: item}
		n, _, err := int64Param(tmp, key)
		if err != nil {
			return nil, err
		}

		result = append(result, n)
	}

	return result, nil
}
