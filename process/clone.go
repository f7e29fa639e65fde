package process

import "github.com/c360studio/jskos/model"

// Passthrough fields with reference types are copied so the processed
// tree never aliases raw memory.

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyDates(in []model.Date) []model.Date {
	if in == nil {
		return nil
	}
	out := make([]model.Date, len(in))
	copy(out, in)
	return out
}

func copyLanguageMap(in model.LanguageMap) model.LanguageMap {
	if in == nil {
		return nil
	}
	out := make(model.LanguageMap, len(in))
	for code, label := range in {
		out[code] = label
	}
	return out
}

func copyLanguageMapList(in model.LanguageMapList) model.LanguageMapList {
	if in == nil {
		return nil
	}
	out := make(model.LanguageMapList, len(in))
	for code, values := range in {
		out[code] = copyStrings(values)
	}
	return out
}

func copyLiteral(in *model.LiteralValue) *model.LiteralValue {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func copyBool(in *bool) *bool {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func copyInt(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func copyFloat(in *float64) *float64 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
