// SPDX-License-Identifier: MPL-2.0

package source

import (
	"fmt"
	"strings"

	"typedump/pkg/typemodel"
)

// artifactHeader opens every source artifact: the image stamp, plus the
// using directive the generated stub bodies need under compile tidying.
func (r *Renderer) artifactHeader() string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Image: %s\n", r.model.Image)
	if r.opts.MustCompile {
		b.WriteString("using System;\n")
	}
	b.WriteByte('\n')
	return b.String()
}

// writeEntry renders one type declaration stub. Type indices, field offsets,
// and method pointers are comment metadata, dropped under SuppressMetadata.
func (r *Renderer) writeEntry(b *strings.Builder, entry typemodel.TypeEntry) {
	fmt.Fprintf(b, "// Namespace: %s\n", entry.Namespace)
	for _, attr := range entry.Attributes {
		fmt.Fprintf(b, "[%s]\n", attr)
	}
	fmt.Fprintf(b, "public %s %s", entry.Kind, entry.Name)
	if entry.BaseType != "" {
		fmt.Fprintf(b, " : %s", entry.BaseType)
	}
	if !r.opts.SuppressMetadata {
		fmt.Fprintf(b, " // TypeDefIndex: %d", entry.Index)
	}
	b.WriteString("\n{\n")
	r.writeFields(b, entry)
	r.writeMethods(b, entry)
	b.WriteString("}\n")
}

func (r *Renderer) writeFields(b *strings.Builder, entry typemodel.TypeEntry) {
	if len(entry.Fields) == 0 {
		return
	}
	b.WriteString("\t// Fields\n")
	for _, field := range entry.Fields {
		b.WriteString("\tpublic ")
		if field.IsStatic {
			b.WriteString("static ")
		}
		fmt.Fprintf(b, "%s %s;", field.Type, field.Name)
		if !r.opts.SuppressMetadata && !field.IsStatic {
			fmt.Fprintf(b, " // 0x%X", field.Offset)
		}
		b.WriteByte('\n')
	}
}

func (r *Renderer) writeMethods(b *strings.Builder, entry typemodel.TypeEntry) {
	if len(entry.Methods) == 0 {
		return
	}
	if len(entry.Fields) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString("\t// Methods\n")
	for _, method := range entry.Methods {
		if !r.opts.SuppressMetadata {
			fmt.Fprintf(b, "\t// RVA: 0x%X\n", method.Pointer)
		}
		fmt.Fprintf(b, "\tpublic %s %s%s", method.ReturnType, method.Name, method.Signature)
		if r.opts.MustCompile {
			b.WriteString(" { throw new NotImplementedException(); }\n")
		} else {
			b.WriteString(";\n")
		}
	}
}

// attributeLines renders assembly-level attribute text.
func attributeLines(attrs []string) []byte {
	var b strings.Builder
	for _, attr := range attrs {
		fmt.Fprintf(&b, "[assembly: %s]\n", attr)
	}
	return []byte(b.String())
}
