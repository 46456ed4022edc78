package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/codec"
	"gopkg.in/ini.v1"
)

// LoadFromINI builds a Catalog from an INI mapping file, in the teacher's
// ini.v1-backed object-dictionary style (pkg/od/variable.go,
// pkg/od/parser.go). Sections are named `[Parameter.<name>]`, with `ID`,
// `Kind` and `Writable` keys, and `[Database.<name>]`, with ordered
// `Field.<n> = name,kind[,scaled][,divisor]` keys.
func LoadFromINI(path string) (*Catalog, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, corus.NewConfigErrorf("loading catalog ini %q: %v", path, err)
	}

	var parameters []Parameter
	layouts := make(map[string]RecordLayout)

	for _, section := range f.Sections() {
		switch {
		case strings.HasPrefix(section.Name(), "Parameter."):
			p, err := parameterFromSection(section)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, p)
		case strings.HasPrefix(section.Name(), "Database."):
			name := strings.TrimPrefix(section.Name(), "Database.")
			layout, err := layoutFromSection(section)
			if err != nil {
				return nil, err
			}
			layouts[name] = layout
		}
	}

	return New(parameters, layouts), nil
}

func parameterFromSection(section *ini.Section) (Parameter, error) {
	name := strings.TrimPrefix(section.Name(), "Parameter.")

	id, err := section.Key("ID").Int()
	if err != nil {
		return Parameter{}, corus.NewConfigErrorf("parameter %q: bad or missing ID: %v", name, err)
	}

	kind, err := kindFromString(section.Key("Kind").Value())
	if err != nil {
		return Parameter{}, corus.NewConfigErrorf("parameter %q: %v", name, err)
	}

	writable := false
	if key, err := section.GetKey("Writable"); err == nil {
		writable, err = key.Bool()
		if err != nil {
			return Parameter{}, corus.NewConfigErrorf("parameter %q: bad Writable value: %v", name, err)
		}
	}

	return Parameter{
		Name:        name,
		ID:          id,
		Kind:        kind,
		Readable:    true,
		Writable:    writable,
		Description: section.Key("Description").Value(),
	}, nil
}

func layoutFromSection(section *ini.Section) (RecordLayout, error) {
	type indexedField struct {
		index int
		field Field
	}
	var fields []indexedField

	for _, key := range section.Keys() {
		if !strings.HasPrefix(key.Name(), "Field.") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(key.Name(), "Field."))
		if err != nil {
			return nil, corus.NewConfigErrorf("database %q: bad field key %q", section.Name(), key.Name())
		}
		field, err := fieldFromValue(key.Value())
		if err != nil {
			return nil, corus.NewConfigErrorf("database %q field %d: %v", section.Name(), n, err)
		}
		fields = append(fields, indexedField{index: n, field: field})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].index < fields[j].index })

	layout := make(RecordLayout, len(fields))
	for i, f := range fields {
		layout[i] = f.field
	}
	return layout, nil
}

// fieldFromValue parses "name,kind[,scaled][,divisor]".
func fieldFromValue(value string) (Field, error) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return Field{}, fmt.Errorf("expected at least name,kind, got %q", value)
	}
	kind, err := kindFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return Field{}, err
	}
	field := Field{Name: strings.TrimSpace(parts[0]), Kind: kind}
	for _, extra := range parts[2:] {
		extra = strings.TrimSpace(extra)
		if extra == "scaled" {
			field.Scaled = true
			continue
		}
		if divisor, err := strconv.Atoi(extra); err == nil {
			field.Divisor = &divisor
			continue
		}
		return Field{}, fmt.Errorf("unrecognized field option %q", extra)
	}
	return field, nil
}

func kindFromString(s string) (codec.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "byte":
		return codec.Byte, nil
	case "word":
		return codec.Word, nil
	case "eword":
		return codec.EWord, nil
	case "ulong":
		return codec.ULong, nil
	case "eulong":
		return codec.EULong, nil
	case "float":
		return codec.Float, nil
	case "float1":
		return codec.Float1, nil
	case "float2":
		return codec.Float2, nil
	case "float3":
		return codec.Float3, nil
	case "date":
		return codec.Date, nil
	case "index":
		return codec.Index, nil
	case "index9":
		return codec.Index9, nil
	case "string":
		return codec.String, nil
	case "null2":
		return codec.Null2, nil
	case "null4":
		return codec.Null4, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}
