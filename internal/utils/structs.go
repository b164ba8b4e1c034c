package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

// StructTagValues lists the column tags of input in field order. Untagged
// embedded structs are flattened into the parent, matching how scany maps
// them when scanning rows.
func StructTagValues(input any) []string {
	targetValue := structValue(input)

	result := make([]string, 0, targetValue.NumField())
	walkColumns(targetValue, func(column string, _ reflect.Value) {
		result = append(result, column)
	})

	return result
}

func StructToMap(input any) map[string]any {
	result := make(map[string]any)
	walkColumns(structValue(input), func(column string, v reflect.Value) {
		result[column] = v.Interface()
	})

	return result
}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return v
}

func walkColumns(v reflect.Value, fn func(column string, field reflect.Value)) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "-" {
			continue
		}

		if tagValue == "" {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				walkColumns(v.Field(i), fn)
			}
			continue
		}

		fn(tagValue, v.Field(i))
	}
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
