// Package typemeta analyzes struct types into property metadata used for
// name-based member resolution during predicate projection and compilation.
package typemeta

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TypeMetadata holds the projectable properties of a struct type.
type TypeMetadata struct {
	Type       reflect.Type
	Properties []PropertyMetadata

	// byName maps both the Go field name and the json tag name to an index
	// into Properties.
	byName map[string]int
}

// PropertyMetadata describes one exported struct field.
type PropertyMetadata struct {
	Name     string
	JSONName string
	Type     reflect.Type
	Index    []int
}

var cache sync.Map // reflect.Type -> *TypeMetadata

// Analyze extracts property metadata from a struct type. Pointer types are
// dereferenced. Results are cached per type.
func Analyze(t reflect.Type) (*TypeMetadata, error) {
	if t == nil {
		return nil, fmt.Errorf("typemeta: type is nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("typemeta: type must be a struct, got %s", t.Kind())
	}

	if cached, ok := cache.Load(t); ok {
		return cached.(*TypeMetadata), nil
	}

	meta := &TypeMetadata{
		Type:   t,
		byName: make(map[string]int),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonName := jsonFieldName(field)
		if jsonName == "-" {
			continue
		}
		if jsonName == "" {
			jsonName = field.Name
		}

		property := PropertyMetadata{
			Name:     field.Name,
			JSONName: jsonName,
			Type:     field.Type,
			Index:    field.Index,
		}

		idx := len(meta.Properties)
		meta.Properties = append(meta.Properties, property)
		meta.byName[field.Name] = idx
		if jsonName != field.Name {
			meta.byName[jsonName] = idx
		}
	}

	actual, _ := cache.LoadOrStore(t, meta)
	return actual.(*TypeMetadata), nil
}

// AnalyzeValue analyzes the dynamic type of v.
func AnalyzeValue(v interface{}) (*TypeMetadata, error) {
	return Analyze(reflect.TypeOf(v))
}

// Lookup resolves a property by Go field name or json tag name.
func (m *TypeMetadata) Lookup(name string) (*PropertyMetadata, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return &m.Properties[idx], true
}

// HasProperty reports whether a property of the given name exists.
func (m *TypeMetadata) HasProperty(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// ValueOf returns the field value of item for the given property. The item
// must be an addressable or plain struct value of the analyzed type.
func (m *TypeMetadata) ValueOf(item reflect.Value, p *PropertyMetadata) reflect.Value {
	return item.FieldByIndex(p.Index)
}

func jsonFieldName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return ""
	}
	parts := strings.Split(jsonTag, ",")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
