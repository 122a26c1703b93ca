// Package snapshot captures portable, content-addressed snapshots of a
// managed runtime's loaded metadata.
//
// A snapshot records every class a runtime's images declare, with method
// and field signatures rendered as display strings. Snapshots are plain
// data: they can be hashed, serialized and inspected offline, long after
// the runtime that produced them is gone.
package snapshot

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/tether/bridge/raw"
)

// MethodSig is the flattened signature of one method.
type MethodSig struct {
	Name   string
	Static bool
	Params []string
	Return string
}

// FieldSig is the flattened signature of one field.
type FieldSig struct {
	Name string
	Type string
}

// ClassDigest is a compact representation of a class suitable for content
// addressing: structural metadata plus a hash over it.
type ClassDigest struct {
	Namespace string
	Name      string
	Parent    string
	Methods   []MethodSig
	Fields    []FieldSig
	Hash      [32]byte
}

// Display returns the class display name, Namespace.Name or bare Name.
func (d *ClassDigest) Display() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// ComputeHash fills in the digest's content hash. The hash covers the
// structural metadata in a fixed field order, so equal structures hash
// equal regardless of when or where they were captured.
func (d *ClassDigest) ComputeHash() {
	h := sha256.New()
	writeStr := func(s string) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}

	writeStr(d.Namespace)
	writeStr(d.Name)
	writeStr(d.Parent)
	for _, m := range d.Methods {
		writeStr(m.Name)
		if m.Static {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		for _, p := range m.Params {
			writeStr(p)
		}
		writeStr(m.Return)
	}
	for _, f := range d.Fields {
		writeStr(f.Name)
		writeStr(f.Type)
	}

	copy(d.Hash[:], h.Sum(nil))
}

// Snapshot is one capture of a runtime's loaded metadata.
type Snapshot struct {
	// ID is a fresh identity per capture.
	ID string
	// CapturedAt is the capture time in UTC.
	CapturedAt time.Time
	// Classes holds one digest per loaded class, in image order.
	Classes []ClassDigest
}

// Capture walks the runtime's loaded assemblies and digests every class.
// Assemblies without an image are skipped, as in class resolution.
func Capture(rt raw.Runtime) *Snapshot {
	snap := &Snapshot{
		ID:         uuid.New().String(),
		CapturedAt: time.Now().UTC(),
	}
	for _, asm := range rt.Assemblies() {
		img := rt.AssemblyImage(asm)
		if img == nil {
			continue
		}
		for _, c := range rt.ImageClasses(img) {
			snap.Classes = append(snap.Classes, digestClass(c))
		}
	}
	return snap
}

// Digest returns the snapshot's overall content hash: the hash of the
// sorted class hashes. Two captures of the same metadata digest equal even
// though their IDs and times differ.
func (s *Snapshot) Digest() [32]byte {
	hashes := make([][32]byte, len(s.Classes))
	for i, c := range s.Classes {
		hashes[i] = c.Hash
	}
	sort.Slice(hashes, func(i, j int) bool {
		for k := 0; k < 32; k++ {
			if hashes[i][k] != hashes[j][k] {
				return hashes[i][k] < hashes[j][k]
			}
		}
		return false
	})

	h := sha256.New()
	for _, hh := range hashes {
		h.Write(hh[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Find returns the digest for the given display name, or nil.
func (s *Snapshot) Find(display string) *ClassDigest {
	for i := range s.Classes {
		if s.Classes[i].Display() == display {
			return &s.Classes[i]
		}
	}
	return nil
}

func digestClass(c *raw.ClassRecord) ClassDigest {
	d := ClassDigest{
		Namespace: c.Namespace,
		Name:      c.Name,
	}
	if c.Parent != nil {
		d.Parent = displayName(c.Parent)
	}
	for _, m := range c.Methods {
		sig := MethodSig{
			Name:   m.Name,
			Static: m.Static,
			Return: typeName(m.Return),
		}
		for _, p := range m.Params {
			sig.Params = append(sig.Params, typeName(p.Type))
		}
		d.Methods = append(d.Methods, sig)
	}
	for _, f := range c.Fields {
		d.Fields = append(d.Fields, FieldSig{Name: f.Name, Type: typeName(f.Type)})
	}
	d.ComputeHash()
	return d
}

func displayName(c *raw.ClassRecord) string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "." + c.Name
}

func typeName(t *raw.TypeRecord) string {
	if t == nil {
		return raw.KindVoid.String()
	}
	if t.Class != nil {
		return displayName(t.Class)
	}
	return t.Kind.String()
}
