package manifest

import (
	"fmt"
	"os"
)

// ParseDescriptors extracts descriptors from raw manifest text. Every
// top-level record is read independently and each known field is looked
// up on its own, so any subset of fields may be present. Records that
// carry neither an id, an entry, nor a :config directive are discarded
// without error, as is anything the reader cannot make sense of.
func ParseDescriptors(data []byte) Manifest {
	src := stripCommentLines(string(data))

	m := Manifest{}
	for _, rec := range splitRecords(src) {
		if d, ok := descriptorFromRecord(readRecord(rec)); ok {
			m = append(m, d)
		}
	}
	return m
}

// ParseFile reads a manifest file and extracts its descriptors.
func ParseFile(path string) (Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDescriptors(data), nil
}

func descriptorFromRecord(rec value) (Descriptor, bool) {
	var d Descriptor
	if rec.kind != kindMap {
		return d, false
	}

	if v, ok := rec.get("id"); ok {
		d.ID = v.name()
	}
	if v, ok := rec.get("entry"); ok && v.kind != kindKeyword {
		d.Entry = v.name()
	}
	if v, ok := rec.get("type"); ok {
		d.Type = v.name()
	}
	if v, ok := rec.get("envs"); ok {
		d.Envs = v.tags()
	}
	if v, ok := rec.get("modes"); ok {
		d.Modes = v.tags()
	}
	if v, ok := rec.get("enabled"); ok {
		if b, ok := v.boolean(); ok {
			d.Enabled = &b
		}
	}
	if v, ok := rec.get("files"); ok {
		d.Files = v.stringItems()
	}
	if v, ok := rec.get("config"); ok {
		d.Config = directiveFrom(v)
	}

	if d.ID == "" && d.Entry == "" && d.Config == nil {
		return d, false
	}
	return d, true
}

// directiveFrom reads a :config value. Any :config key makes the record a
// directive; only a map can carry the include-platform flag.
func directiveFrom(v value) *Directive {
	dir := &Directive{}
	for _, key := range []string{"include-platform?", "include-platform"} {
		flag, ok := v.get(key)
		if !ok {
			continue
		}
		if b, ok := flag.boolean(); ok {
			dir.IncludePlatform = &b
			break
		}
	}
	return dir
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
