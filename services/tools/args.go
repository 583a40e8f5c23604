package tools

// Argument decoding for model-provided function calls. Gemini delivers
// arguments as map[string]any with JSON number semantics (float64), so each
// helper normalises one field and reports a ValidationError on mismatch.

func stringArg(args map[string]any, field string, required bool) (string, *ValidationError) {
	raw, ok := args[field]
	if !ok || raw == nil {
		if required {
			return "", invalidArg(field, "required")
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalidArg(field, "expected a string, got %T", raw)
	}
	if required && s == "" {
		return "", invalidArg(field, "required")
	}
	return s, nil
}

func intArg(args map[string]any, field string, required bool) (int, *ValidationError) {
	raw, ok := args[field]
	if !ok || raw == nil {
		if required {
			return 0, invalidArg(field, "required")
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, invalidArg(field, "expected a whole number, got %v", v)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, invalidArg(field, "expected a number, got %T", raw)
	}
}

func floatArg(args map[string]any, field string, required bool) (float64, *ValidationError) {
	raw, ok := args[field]
	if !ok || raw == nil {
		if required {
			return 0, invalidArg(field, "required")
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, invalidArg(field, "expected a number, got %T", raw)
	}
}

// tourListArg decodes the selectExtras tours argument:
// [{"tourId": "...", "quantity": n}, ...].
func tourListArg(args map[string]any, field string) ([]tourArg, *ValidationError) {
	raw, ok := args[field]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, invalidArg(field, "expected a list, got %T", raw)
	}
	out := make([]tourArg, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, invalidArg(field, "entry %d: expected an object, got %T", i, item)
		}
		id, verr := stringArg(entry, "tourId", true)
		if verr != nil {
			return nil, invalidArg(field, "entry %d: %s", i, verr.Reason)
		}
		qty, verr := intArg(entry, "quantity", true)
		if verr != nil {
			return nil, invalidArg(field, "entry %d: %s", i, verr.Reason)
		}
		out = append(out, tourArg{TourID: id, Quantity: qty})
	}
	return out, nil
}

type tourArg struct {
	TourID   string
	Quantity int
}
