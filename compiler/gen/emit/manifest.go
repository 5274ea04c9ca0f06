package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/beangen"
	"github.com/syssam/beangen/compiler/gen"
)

// ManifestName is the file name of the manifest in the output root.
const ManifestName = ".beangen.manifest"

// Manifest lists what a generation run produced. It is encoded with
// msgpack and lists packages, classes, enums and elements in a stable
// order, so that two runs over the same model differ only in Run.
type Manifest struct {
	Run      string             `msgpack:"run"`
	Version  string             `msgpack:"version"`
	Packages []*ManifestPackage `msgpack:"packages"`
}

// ManifestPackage is the manifest entry of one generated package.
type ManifestPackage struct {
	Path      string           `msgpack:"path"`
	Namespace string           `msgpack:"namespace,omitempty"`
	Files     []string         `msgpack:"files,omitempty"`
	Classes   []*ManifestClass `msgpack:"classes,omitempty"`
	Enums     []*ManifestEnum  `msgpack:"enums,omitempty"`
	Elements  []string         `msgpack:"elements,omitempty"`
}

// ManifestClass is the manifest entry of one class.
type ManifestClass struct {
	Schema     string   `msgpack:"schema"`
	Type       string   `msgpack:"type"`
	Impl       string   `msgpack:"impl,omitempty"`
	Superclass string   `msgpack:"superclass,omitempty"`
	Fields     []string `msgpack:"fields,omitempty"`
}

// ManifestEnum is the manifest entry of one enum.
type ManifestEnum struct {
	Schema    string   `msgpack:"schema"`
	Type      string   `msgpack:"type"`
	Constants []string `msgpack:"constants,omitempty"`
}

// NewManifest builds the manifest of a compiled outline.
func NewManifest(o *gen.Outline, run uuid.UUID) *Manifest {
	m := &Manifest{Run: run.String(), Version: beangen.Version}
	for _, p := range o.Packages() {
		mp := &ManifestPackage{Path: p.Path(), Namespace: p.MostUsedNamespace()}
		for _, cc := range p.Classes() {
			mc := &ManifestClass{Schema: cc.Target.FullName(), Type: cc.Ref.FullName()}
			if cc.Impl != cc.Ref {
				mc.Impl = cc.Impl.FullName()
			}
			if sc := cc.Superclass(); sc != nil {
				mc.Superclass = sc.Ref.FullName()
			}
			for _, f := range cc.Fields() {
				if f.Field != nil {
					mc.Fields = append(mc.Fields, f.Field.Name)
				}
			}
			mp.Classes = append(mp.Classes, mc)
		}
		for _, eo := range p.Enums() {
			me := &ManifestEnum{Schema: eo.Target.FullName(), Type: eo.Type.FullName()}
			for _, c := range eo.Constants() {
				me.Constants = append(me.Constants, c.Name)
			}
			mp.Enums = append(mp.Enums, me)
		}
		for _, eo := range p.Elements() {
			mp.Elements = append(mp.Elements, eo.Impl.FullName())
		}
		m.Packages = append(m.Packages, mp)
	}
	return m
}

// Package returns the entry of a package.
func (m *Manifest) Package(path string) (*ManifestPackage, bool) {
	for _, p := range m.Packages {
		if p.Path == path {
			return p, true
		}
	}
	return nil, false
}

// AddFile records a written file under its package, adding the package
// entry when the outline had none for it.
func (m *Manifest) AddFile(pkg, file string) {
	p, ok := m.Package(pkg)
	if !ok {
		p = &ManifestPackage{Path: pkg}
		m.Packages = append(m.Packages, p)
		sort.Slice(m.Packages, func(i, j int) bool { return m.Packages[i].Path < m.Packages[j].Path })
	}
	p.Files = append(p.Files, file)
	sort.Strings(p.Files)
}

// Encode returns the msgpack encoding of m.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeManifest decodes a manifest produced by Encode.
func DecodeManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := msgpack.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// WriteManifest encodes m to the given file.
func WriteManifest(path string, m *Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return DecodeManifest(data)
}
